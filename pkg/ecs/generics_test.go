package ecs

import "testing"

type testVelocityComponent struct {
	VX, VY, VZ float64
}

// TestGenericGetComponent 测试泛型组件访问
func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testDoorComponent{Index: 3})

	t.Run("存在的组件", func(t *testing.T) {
		door, ok := GetComponent[*testDoorComponent](em, id)
		if !ok {
			t.Fatal("GetComponent should find the component")
		}
		if door.Index != 3 {
			t.Errorf("Index = %d, 期望 3", door.Index)
		}
	})

	t.Run("不存在的组件返回零值", func(t *testing.T) {
		v, ok := GetComponent[*testVelocityComponent](em, id)
		if ok {
			t.Error("GetComponent should report missing component")
		}
		if v != nil {
			t.Errorf("Missing component should be zero value, got %v", v)
		}
	})

	t.Run("不存在的实体", func(t *testing.T) {
		_, ok := GetComponent[*testDoorComponent](em, EntityID(9999))
		if ok {
			t.Error("GetComponent on unknown entity should fail")
		}
	})
}

// TestGenericHasRemove 测试泛型存在性检查与移除
func TestGenericHasRemove(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testVelocityComponent{VX: 1})

	if !HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should report the added component")
	}

	RemoveComponent[*testVelocityComponent](em, id)
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

// TestGenericQueries 测试泛型多组件查询
func TestGenericQueries(t *testing.T) {
	em := NewEntityManager()

	e1 := em.CreateEntity()
	AddComponent(em, e1, &testTransformComponent{})
	AddComponent(em, e1, &testDoorComponent{})
	AddComponent(em, e1, &testVelocityComponent{})

	e2 := em.CreateEntity()
	AddComponent(em, e2, &testTransformComponent{})
	AddComponent(em, e2, &testVelocityComponent{})

	e3 := em.CreateEntity()
	AddComponent(em, e3, &testTransformComponent{})

	t.Run("单组件查询", func(t *testing.T) {
		got := GetEntitiesWith1[*testTransformComponent](em)
		if len(got) != 3 {
			t.Errorf("Expected 3 entities, got %d", len(got))
		}
	})

	t.Run("双组件查询", func(t *testing.T) {
		got := GetEntitiesWith2[*testTransformComponent, *testVelocityComponent](em)
		if len(got) != 2 {
			t.Fatalf("Expected 2 entities, got %d", len(got))
		}
		if got[0] != e1 || got[1] != e2 {
			t.Errorf("Query should be sorted by ID, got %v", got)
		}
	})

	t.Run("三组件查询", func(t *testing.T) {
		got := GetEntitiesWith3[*testTransformComponent, *testDoorComponent, *testVelocityComponent](em)
		if len(got) != 1 || got[0] != e1 {
			t.Errorf("Expected [%d], got %v", e1, got)
		}
	})

	t.Run("无匹配返回空切片", func(t *testing.T) {
		type neverAdded struct{ _ int }
		got := GetEntitiesWith1[*neverAdded](em)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", got)
		}
	})
}
