package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y, Z float64
}

type testDoorComponent struct {
	Index    int
	IsOpened bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("CreateEntity should never return InvalidEntity")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	door := &testDoorComponent{Index: 2, IsOpened: false}
	em.AddComponent(id, door)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testDoorComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testDoorComponent)
	if retrieved.Index != 2 {
		t.Errorf("Component data mismatch, expected index 2, got %d", retrieved.Index)
	}

	// 组件以指针共享：修改取出的组件应影响存储的组件
	retrieved.IsOpened = true
	comp2, _ := em.GetComponent(id, reflect.TypeOf(&testDoorComponent{}))
	if !comp2.(*testDoorComponent).IsOpened {
		t.Error("Components should be shared by pointer")
	}
}

func TestAddComponentOverwrite(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testDoorComponent{Index: 1})
	em.AddComponent(id, &testDoorComponent{Index: 7})

	comp, _ := em.GetComponent(id, reflect.TypeOf(&testDoorComponent{}))
	if comp.(*testDoorComponent).Index != 7 {
		t.Error("Re-adding a component of the same type should overwrite")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	doorType := reflect.TypeOf(&testDoorComponent{})

	if em.HasComponent(id, doorType) {
		t.Error("New entity should have no components")
	}

	em.AddComponent(id, &testDoorComponent{})
	if !em.HasComponent(id, doorType) {
		t.Error("HasComponent should report the added component")
	}

	em.RemoveComponent(id, doorType)
	if em.HasComponent(id, doorType) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

// TestTwoPhaseDestroy 测试两段式删除
//
// DestroyEntity 只做标记，RemoveMarkedEntities 才真正清理。
// 装备系统在动画中途销毁道具实体依赖这一语义。
func TestTwoPhaseDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTransformComponent{X: 1})

	em.DestroyEntity(id)

	t.Run("标记后实体仍然存在", func(t *testing.T) {
		if !em.IsAlive(id) {
			t.Error("Entity should survive until RemoveMarkedEntities")
		}
	})

	t.Run("清理后实体消失", func(t *testing.T) {
		em.RemoveMarkedEntities()
		if em.IsAlive(id) {
			t.Error("Entity should be gone after RemoveMarkedEntities")
		}
		if _, found := em.GetComponent(id, reflect.TypeOf(&testTransformComponent{})); found {
			t.Error("Components of destroyed entity should be gone")
		}
	})
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 三个实体：两个有 Transform+Door，一个只有 Transform
	e1 := em.CreateEntity()
	em.AddComponent(e1, &testTransformComponent{})
	em.AddComponent(e1, &testDoorComponent{Index: 0})

	e2 := em.CreateEntity()
	em.AddComponent(e2, &testTransformComponent{})

	e3 := em.CreateEntity()
	em.AddComponent(e3, &testTransformComponent{})
	em.AddComponent(e3, &testDoorComponent{Index: 1})

	result := em.GetEntitiesWith(
		reflect.TypeOf(&testTransformComponent{}),
		reflect.TypeOf(&testDoorComponent{}),
	)

	if len(result) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(result))
	}

	// 查询结果必须按ID升序，保证系统处理顺序稳定
	if result[0] != e1 || result[1] != e3 {
		t.Errorf("Query result should be sorted by ID, got %v", result)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTransformComponent{})
	}

	em.Clear()

	if got := em.GetEntitiesWith(reflect.TypeOf(&testTransformComponent{})); len(got) != 0 {
		t.Errorf("Clear should remove all entities, got %d", len(got))
	}

	// 清空后ID重新从1开始（场景重建依赖）
	if id := em.CreateEntity(); id != 1 {
		t.Errorf("Entity ID should restart at 1 after Clear, got %d", id)
	}
}
