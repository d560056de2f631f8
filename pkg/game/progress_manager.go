package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PlayerProgress 玩家进度统计
//
// 记录转盘与开门的累计数据，用于调试视图展示和长期留存。
type PlayerProgress struct {
	// TotalSpins 累计完成的转盘次数
	TotalSpins int `yaml:"totalSpins"`

	// DoorsOpened 累计开门次数
	DoorsOpened int `yaml:"doorsOpened"`

	// LastPartition 最近一次转盘结果分区号，0 = 尚未转过
	LastPartition int `yaml:"lastPartition"`

	// SectorHits 各分区命中次数，索引 = 分区号-1
	SectorHits []int `yaml:"sectorHits"`
}

// ProgressManager 进度统计管理器
// 与 SettingsManager 相同的 gdata+yaml 存储模式
type ProgressManager struct {
	gdataManager *gdata.Manager  // 可为 nil（降级模式）
	progress     *PlayerProgress // 当前进度
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "stats"
)

// NewProgressManager 创建进度统计管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存统计）
func NewProgressManager(gdataManager *gdata.Manager) (*ProgressManager, error) {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     &PlayerProgress{},
	}

	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}

	return pm, nil
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil {
		pm.progress = &PlayerProgress{}
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = &PlayerProgress{}
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = &PlayerProgress{}
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded PlayerProgress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		pm.progress = &PlayerProgress{}
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	pm.progress = &loaded
	log.Printf("[ProgressManager] Progress loaded: %d spins, %d doors opened",
		loaded.TotalSpins, loaded.DoorsOpened)
	return nil
}

// Save 保存进度到 gdata
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// GetProgress 获取当前进度
func (pm *ProgressManager) GetProgress() *PlayerProgress {
	return pm.progress
}

// RecordSpin 记录一次转盘结果
//
// SectorHits 按需扩容到分区数，分区号越界时只累加总数。
// 注意：仅修改内存中的统计，需调用 Save() 方法持久化
func (pm *ProgressManager) RecordSpin(partition, partitionCount int) {
	pm.progress.TotalSpins++
	pm.progress.LastPartition = partition

	if partition < 1 || partition > partitionCount {
		log.Printf("[ProgressManager] Spin result %d outside [1,%d], histogram not updated",
			partition, partitionCount)
		return
	}

	for len(pm.progress.SectorHits) < partitionCount {
		pm.progress.SectorHits = append(pm.progress.SectorHits, 0)
	}
	pm.progress.SectorHits[partition-1]++
}

// RecordDoorOpened 记录一次开门
//
// 注意：仅修改内存中的统计，需调用 Save() 方法持久化
func (pm *ProgressManager) RecordDoorOpened() {
	pm.progress.DoorsOpened++
}
