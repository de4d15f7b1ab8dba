package depot

import (
	"testing"
)

// TestQueryWithCursor tests the cursor-based entity iteration
func TestQueryWithCursor(t *testing.T) {
	tests := []struct {
		name          string
		entityTypes   [][]Kind
		queryKinds    []Kind
		expectedCount int
	}{
		{
			name: "Query with position",
			entityTypes: [][]Kind{
				{posKind},
				{posKind, velKind},
				{velKind},
			},
			queryKinds:    []Kind{posKind},
			expectedCount: 20,
		},
		{
			name: "Query with position and velocity",
			entityTypes: [][]Kind{
				{posKind},
				{posKind, velKind},
				{velKind},
			},
			queryKinds:    []Kind{posKind, velKind},
			expectedCount: 10,
		},
		{
			name: "Query with no matches",
			entityTypes: [][]Kind{
				{posKind},
				{velKind},
			},
			queryKinds:    []Kind{healthKind},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newTestStorage(posKind, velKind, healthKind)
			for _, kinds := range tt.entityTypes {
				for _, id := range storage.NewEntities(10) {
					for _, k := range kinds {
						if err := storage.AddComponent(id, k, zeroFor(k)); err != nil {
							t.Fatalf("Failed to add component: %v", err)
						}
					}
				}
			}
			query := Factory.NewQuery(tt.queryKinds...)

			// Method 1: Use cursor directly
			cursor := Factory.NewCursor(query, storage)
			count1 := 0
			for cursor.Next() {
				count1++
			}

			// Method 2: Use cursor's TotalMatched
			cursor = Factory.NewCursor(query, storage)
			count2 := cursor.TotalMatched()

			// Method 3: Range over a cached cursor
			cached := Factory.NewCachedCursor(query, Factory.NewQueryCache(storage, 4))
			count3 := 0
			for range cached.Entities() {
				count3++
			}

			if count1 != count2 || count1 != count3 {
				t.Errorf("Cursor counts inconsistent: %d vs %d vs %d", count1, count2, count3)
			}
			if count1 != tt.expectedCount {
				t.Errorf("Query matched %d entities, want %d", count1, tt.expectedCount)
			}
			if storage.Locked() {
				t.Errorf("storage still locked after cursors finished")
			}
		})
	}
}

// TestCursorComponentAccess tests accessing component data through a cursor
func TestCursorComponentAccess(t *testing.T) {
	storage := newTestStorage(posKind, velKind)

	for i := 0; i < 10; i++ {
		id := storage.NewEntity()
		if err := posKind.Add(storage, id, Position{X: float64(i), Y: float64(i * 2)}); err != nil {
			t.Fatalf("Failed to add position: %v", err)
		}
		if err := velKind.Add(storage, id, Velocity{X: float64(i) * 0.1, Y: float64(i) * 0.2}); err != nil {
			t.Fatalf("Failed to add velocity: %v", err)
		}
	}

	query := Factory.NewQuery(posKind, velKind)
	cursor := Factory.NewCursor(query, storage)
	for cursor.Next() {
		pos, _ := posKind.GetFromCursor(cursor)
		vel, _ := velKind.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

	cursor = Factory.NewCursor(query, storage)
	for cursor.Next() {
		pos, _ := posKind.GetFromCursor(cursor)
		vel, _ := velKind.GetFromCursor(cursor)
		i := vel.X * 10
		if !almostEqual(pos.X, i*1.1, 0.0001) || !almostEqual(pos.Y, i*2.2, 0.0001) {
			t.Errorf("Position {%v, %v} with velocity {%v, %v} doesn't match expected pattern",
				pos.X, pos.Y, vel.X, vel.Y)
		}
	}
}

func TestCursorDefersDestroy(t *testing.T) {
	storage := newTestStorage(posKind, healthKind)
	for i := 0; i < 6; i++ {
		id := storage.NewEntity()
		posKind.Add(storage, id, Position{})
		healthKind.Add(storage, id, Health{Current: i % 2})
	}

	cursor := Factory.NewCursor(Factory.NewQuery(healthKind), storage)
	visited := 0
	for cursor.Next() {
		visited++
		if !storage.Locked() {
			t.Fatalf("storage not locked during iteration")
		}
		health, _ := healthKind.GetFromCursor(cursor)
		if health.Current == 0 {
			if err := storage.EnqueueDestroyEntity(cursor.CurrentEntity()); err != nil {
				t.Fatalf("EnqueueDestroyEntity() error = %v", err)
			}
		}
	}

	if visited != 6 {
		t.Errorf("visited %d entities, want 6", visited)
	}
	if storage.EntityCount() != 3 {
		t.Errorf("EntityCount() = %d, want 3", storage.EntityCount())
	}
	if storage.Len(posKind) != 3 || storage.Len(healthKind) != 3 {
		t.Errorf("store sizes = %d, %d; want 3, 3", storage.Len(posKind), storage.Len(healthKind))
	}
}

func TestCursorBreakUnlocks(t *testing.T) {
	storage := newTestStorage(posKind)
	for _, id := range storage.NewEntities(5) {
		posKind.Add(storage, id, Position{})
	}

	cursor := Factory.NewCursor(Factory.NewQuery(posKind), storage)
	for id := range cursor.Entities() {
		if err := storage.EnqueueDestroyEntity(id); err != nil {
			t.Fatalf("EnqueueDestroyEntity() error = %v", err)
		}
		break
	}

	if storage.Locked() {
		t.Errorf("storage still locked after break")
	}
	if storage.EntityCount() != 4 {
		t.Errorf("EntityCount() = %d, want 4", storage.EntityCount())
	}

	cursor.Reset() // no-op on an idle cursor
	if storage.Locked() {
		t.Errorf("Reset on idle cursor changed lock state")
	}
}

// Helper function for float comparisons
func almostEqual(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
