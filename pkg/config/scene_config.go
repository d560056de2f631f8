package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/luckydoor/internal/mathutil"
)

// SceneConfig 场景内容配置
//
// 描述游乐场场景的静态内容：场地尺寸、门的摆放、转盘位置、
// 出生点和道具目录。数值调参在 TuningConfig，这里只放"放什么、放哪里"。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	// Arena 场地尺寸
	Arena ArenaConfig `yaml:"arena"`

	// PlayerSpawn 角色出生点（世界坐标，Y 为脚底高度）
	PlayerSpawn Vec3Config `yaml:"playerSpawn"`

	// Doors 奖品门列表，顺序即门的索引（0 起）
	Doors []DoorSlotConfig `yaml:"doors"`

	// Roulette 转盘摆放
	Roulette RouletteSlotConfig `yaml:"roulette"`

	// Items 道具目录，顺序即装备索引（0 起）
	Items []string `yaml:"items"`
}

// ArenaConfig 场地尺寸
//
// 场地为矩形围墙房间，地面位于 Y=0，中心在原点。
type ArenaConfig struct {
	// Width 场地宽度（X 方向，米）
	Width float64 `yaml:"width"`

	// Depth 场地进深（Z 方向，米）
	Depth float64 `yaml:"depth"`

	// WallHeight 围墙高度（米）
	WallHeight float64 `yaml:"wallHeight"`

	// WallThickness 围墙厚度（米）
	WallThickness float64 `yaml:"wallThickness"`
}

// DoorSlotConfig 单扇门的摆放
type DoorSlotConfig struct {
	// Name 门的显示名称，必填且全场唯一
	Name string `yaml:"name"`

	// Position 门根节点位置（铰链侧门框落点）
	Position Vec3Config `yaml:"position"`

	// FacingYawDeg 门面朝方向（度，0 朝 +Z）
	// 开门演出的机位沿该方向从注视点前推
	FacingYawDeg float64 `yaml:"facingYawDeg"`

	// Width 门板宽度（米）
	Width float64 `yaml:"width"`

	// Height 门板高度（米）
	Height float64 `yaml:"height"`
}

// RouletteSlotConfig 转盘摆放
type RouletteSlotConfig struct {
	// Position 转盘中心位置
	Position Vec3Config `yaml:"position"`

	// Radius 转盘半径（米），只影响调试视图
	Radius float64 `yaml:"radius"`
}

// Vec3Config YAML 中的三维坐标
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ToVec3 转换为 mathutil.Vec3
func (v Vec3Config) ToVec3() mathutil.Vec3 {
	return mathutil.Vec3{v.X, v.Y, v.Z}
}

// LoadSceneConfig 从YAML文件加载场景配置
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return LoadSceneConfigFromBytes(data)
}

// LoadSceneConfigFromBytes 从字节内容加载场景配置
func LoadSceneConfigFromBytes(data []byte) (*SceneConfig, error) {
	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	applySceneDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return &config, nil
}

// DefaultSceneConfig 返回内置默认场景
//
// 三扇门靠北墙一字排开，转盘在场地中央偏南。
func DefaultSceneConfig() *SceneConfig {
	config := &SceneConfig{}
	applySceneDefaults(config)
	return config
}

// applySceneDefaults 为缺失的字段设置默认值
func applySceneDefaults(config *SceneConfig) {
	a := &config.Arena
	if a.Width == 0 {
		a.Width = 20
	}
	if a.Depth == 0 {
		a.Depth = 14
	}
	if a.WallHeight == 0 {
		a.WallHeight = 3
	}
	if a.WallThickness == 0 {
		a.WallThickness = 0.5
	}

	if config.PlayerSpawn == (Vec3Config{}) {
		config.PlayerSpawn = Vec3Config{X: 0, Y: 0, Z: -2}
	}

	if len(config.Doors) == 0 {
		// 默认三扇门贴北墙，朝南（-Z 即 yaw=180）
		z := a.Depth/2 - a.WallThickness
		config.Doors = []DoorSlotConfig{
			{Name: "一号门", Position: Vec3Config{X: -4, Y: 0, Z: z}, FacingYawDeg: 180},
			{Name: "二号门", Position: Vec3Config{X: 0, Y: 0, Z: z}, FacingYawDeg: 180},
			{Name: "三号门", Position: Vec3Config{X: 4, Y: 0, Z: z}, FacingYawDeg: 180},
		}
	}
	for i := range config.Doors {
		d := &config.Doors[i]
		if d.Width == 0 {
			d.Width = 1.2
		}
		if d.Height == 0 {
			d.Height = 2.4
		}
	}

	if config.Roulette.Position == (Vec3Config{}) {
		config.Roulette.Position = Vec3Config{X: 0, Y: 0.9, Z: 2}
	}
	if config.Roulette.Radius == 0 {
		config.Roulette.Radius = 1.0
	}

	if len(config.Items) == 0 {
		config.Items = []string{"手电筒", "木剑", "派对喇叭"}
	}
}

// Validate 验证场景配置有效性
//
// 门名称必须非空且唯一：流程系统按索引定位门，
// 调试视图和日志按名称区分门。
func (c *SceneConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Depth <= 0 {
		return fmt.Errorf("arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Depth)
	}

	if len(c.Doors) == 0 {
		return fmt.Errorf("scene must have at least one door")
	}

	seen := make(map[string]bool)
	for i, d := range c.Doors {
		if d.Name == "" {
			return fmt.Errorf("door %d has empty name", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate door name %q", d.Name)
		}
		seen[d.Name] = true

		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("door %q size must be positive", d.Name)
		}
	}

	for i, item := range c.Items {
		if item == "" {
			return fmt.Errorf("item %d has empty name", i)
		}
	}

	return nil
}
