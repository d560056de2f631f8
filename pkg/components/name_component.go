package components

import (
	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NameComponent 名称组件
//
// 工厂装配实体层级后按名称解析子实体（门铰链、门板、机位目标、手部锚点）。
// 解析失败视为装配错误，实体被排除出对应玩法。
type NameComponent struct {
	// Name 实体名称，在其父实体的子树内应唯一
	Name string
}

// AttachComponent 挂接组件
//
// 描述实体跟随父实体的局部偏移关系。挂接更新系统每帧把
// 世界位置写为 父位置 + 父旋转×(LocalOffset+LocalAnimOffset)。
//
// 门的层级（根→铰链→门板）不走这里：铰链旋转由流程系统驱动，
// 门板位置在铰链自己的局部空间里结算。
type AttachComponent struct {
	// Parent 父实体ID
	Parent ecs.EntityID

	// LocalOffset 相对父实体的局部偏移
	LocalOffset mathutil.Vec3

	// LocalAnimOffset 动画叠加偏移（挥拳前伸在这里驱动）
	LocalAnimOffset mathutil.Vec3

	// InheritRotation 是否继承父实体旋转
	InheritRotation bool
}
