package components

import "github.com/gonewx/luckydoor/internal/mathutil"

// ColliderComponent 碰撞体组件
//
// 轴对齐盒体，中心挂在实体 Transform 位置上方 HalfExtents.Y 处
// （即 Transform.Position 是盒体底面中心，方便把实体"放在地上"）。
// 静态碰撞体（墙、地面、门）不移动，物理系统只拿它们做查询。
type ColliderComponent struct {
	// HalfExtents 半尺寸（米）
	HalfExtents mathutil.Vec3

	// Tag 碰撞标签，见 config.TagFloor / TagWall / TagDoor / TagPlayer
	Tag string

	// Static 静态碰撞体不参与积分，只作为查询目标
	Static bool
}

// NewColliderComponent 创建碰撞体
func NewColliderComponent(halfExtents mathutil.Vec3, tag string, static bool) *ColliderComponent {
	return &ColliderComponent{
		HalfExtents: halfExtents,
		Tag:         tag,
		Static:      static,
	}
}
