package systems

import (
	"math"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// PhysicsSystem 角色物理系统
//
// 固定步长驱动：并入冲量、施加重力、积分位置，再把动态刚体从
// 静态碰撞体里推出并回写接触状态（着地、贴墙及墙面法线）。
// 只有位置参与积分，朝向永远不被本系统改写。
//
// 碰撞体都是轴对齐盒，Transform.Position 是盒体底面中心。
// 已打开的门不再参与碰撞（开门就是让人走进去）。
type PhysicsSystem struct {
	entityManager *ecs.EntityManager

	// MaxFallSpeed 下落速度上限（米/秒），防止穿透薄地板
	maxFallSpeed float64
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(em *ecs.EntityManager) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
		maxFallSpeed:  20.0,
	}
}

// aabb 世界空间轴对齐盒
type aabb struct {
	minX, maxX float64
	minY, maxY float64
	minZ, maxZ float64
}

// colliderAABB 按"底面中心"约定展开碰撞盒
func colliderAABB(pos mathutil.Vec3, half mathutil.Vec3) aabb {
	return aabb{
		minX: pos[0] - half[0], maxX: pos[0] + half[0],
		minY: pos[1], maxY: pos[1] + 2*half[1],
		minZ: pos[2] - half[2], maxZ: pos[2] + half[2],
	}
}

// overlaps 两盒是否相交
func (a aabb) overlaps(b aabb) bool {
	return a.maxX > b.minX && a.minX < b.maxX &&
		a.maxY > b.minY && a.minY < b.maxY &&
		a.maxZ > b.minZ && a.minZ < b.maxZ
}

// staticObstacle 本步参与碰撞的静态盒
type staticObstacle struct {
	box aabb
	tag string
}

// Update 推进一个物理步
//
// deltaTime 固定为 config.FixedDelta，由场景的累加器保证。
func (s *PhysicsSystem) Update(deltaTime float64) {
	obstacles := s.collectStaticObstacles()

	dynamicIDs := ecs.GetEntitiesWith3[
		*components.TransformComponent,
		*components.RigidbodyComponent,
		*components.ColliderComponent,
	](s.entityManager)

	for _, id := range dynamicIDs {
		collider, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
		if collider.Static {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidbodyComponent](s.entityManager, id)

		s.integrate(transform, body, deltaTime)
		s.resolveCollisions(transform, body, collider, obstacles)
		s.probeGround(transform, body, collider, obstacles)
	}
}

// collectStaticObstacles 收集静态碰撞盒
//
// 门板按所属门的开关状态过滤：IsOpened 的门不挡人。
func (s *PhysicsSystem) collectStaticObstacles() []staticObstacle {
	openDoorBodies := make(map[ecs.EntityID]bool)
	for _, id := range ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager) {
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)
		if door.IsOpened {
			openDoorBodies[door.Body] = true
		}
	}

	staticIDs := ecs.GetEntitiesWith2[
		*components.TransformComponent,
		*components.ColliderComponent,
	](s.entityManager)

	obstacles := make([]staticObstacle, 0, len(staticIDs))
	for _, id := range staticIDs {
		collider, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
		if !collider.Static {
			continue
		}
		if openDoorBodies[id] {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		obstacles = append(obstacles, staticObstacle{
			box: colliderAABB(transform.Position, collider.HalfExtents),
			tag: collider.Tag,
		})
	}
	return obstacles
}

// integrate 并入冲量、施加重力并积分位置
func (s *PhysicsSystem) integrate(transform *components.TransformComponent, body *components.RigidbodyComponent, dt float64) {
	// 冲量在步首一次性并入
	body.Velocity = body.Velocity.Add(body.PendingImpulse)
	body.PendingImpulse = mathutil.Vec3{}

	if body.UseGravity {
		scale := body.ExtraFallGravity
		if scale <= 0 {
			scale = 1
		}
		body.Velocity[1] += config.GravityY * scale * dt
		if body.Velocity[1] < -s.maxFallSpeed {
			body.Velocity[1] = -s.maxFallSpeed
		}
	}

	transform.Position = transform.Position.Add(body.Velocity.Scale(dt))
}

// resolveCollisions 把刚体从静态盒里沿最小穿透轴推出
//
// 竖直推出视为落地/顶头，水平推出视为贴墙并记录外法线。
// 接触状态每步重算，先清零再累记。
func (s *PhysicsSystem) resolveCollisions(
	transform *components.TransformComponent,
	body *components.RigidbodyComponent,
	collider *components.ColliderComponent,
	obstacles []staticObstacle,
) {
	body.IsGrounded = false
	body.WallContact = false
	body.WallNormal = mathutil.Vec3{}

	for _, obstacle := range obstacles {
		selfBox := colliderAABB(transform.Position, collider.HalfExtents)
		if !selfBox.overlaps(obstacle.box) {
			continue
		}

		// 各轴穿透深度（带方向：正值表示往正轴推出更近）
		pushX := penetration(selfBox.minX, selfBox.maxX, obstacle.box.minX, obstacle.box.maxX)
		pushY := penetration(selfBox.minY, selfBox.maxY, obstacle.box.minY, obstacle.box.maxY)
		pushZ := penetration(selfBox.minZ, selfBox.maxZ, obstacle.box.minZ, obstacle.box.maxZ)

		absX, absY, absZ := math.Abs(pushX), math.Abs(pushY), math.Abs(pushZ)

		switch {
		case absY <= absX && absY <= absZ:
			transform.Position[1] += pushY
			if pushY > 0 {
				// 从上方落到盒顶
				body.IsGrounded = true
				if body.Velocity[1] < 0 {
					body.Velocity[1] = 0
				}
			} else if body.Velocity[1] > 0 {
				// 顶头
				body.Velocity[1] = 0
			}

		case absX <= absZ:
			transform.Position[0] += pushX
			s.recordWallContact(body, obstacle.tag, mathutil.Vec3{signOf(pushX), 0, 0})
			if body.Velocity[0]*pushX < 0 {
				body.Velocity[0] = 0
			}

		default:
			transform.Position[2] += pushZ
			s.recordWallContact(body, obstacle.tag, mathutil.Vec3{0, 0, signOf(pushZ)})
			if body.Velocity[2]*pushZ < 0 {
				body.Velocity[2] = 0
			}
		}
	}
}

// recordWallContact 记录墙面接触（只有墙和门算"墙"，地板不算）
func (s *PhysicsSystem) recordWallContact(body *components.RigidbodyComponent, tag string, normal mathutil.Vec3) {
	if tag != config.TagWall && tag != config.TagDoor {
		return
	}
	body.WallContact = true
	body.WallNormal = normal
}

// probeGround 近地探测
//
// 推出后若脚底与某个盒顶的间隙小于探测距离且水平投影重叠，
// 同样视为着地（走下小台阶不丢地面状态）。
func (s *PhysicsSystem) probeGround(
	transform *components.TransformComponent,
	body *components.RigidbodyComponent,
	collider *components.ColliderComponent,
	obstacles []staticObstacle,
) {
	if body.IsGrounded || body.Velocity[1] > 0 {
		return
	}

	selfBox := colliderAABB(transform.Position, collider.HalfExtents)
	footY := transform.Position[1]

	for _, obstacle := range obstacles {
		horizontalOverlap := selfBox.maxX > obstacle.box.minX && selfBox.minX < obstacle.box.maxX &&
			selfBox.maxZ > obstacle.box.minZ && selfBox.minZ < obstacle.box.maxZ
		if !horizontalOverlap {
			continue
		}
		gap := footY - obstacle.box.maxY
		if gap >= 0 && gap <= config.GroundProbeDistance {
			body.IsGrounded = true
			return
		}
	}
}

// penetration 单轴穿透深度
//
// 返回把 [aMin,aMax] 推出 [bMin,bMax] 的最短带符号位移。
func penetration(aMin, aMax, bMin, bMax float64) float64 {
	pushPos := bMax - aMin // 往正方向推出的距离
	pushNeg := bMin - aMax // 往负方向推出的距离（负值）
	if pushPos < -pushNeg {
		return pushPos
	}
	return pushNeg
}

// signOf 返回 ±1（0 视为正）
func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
