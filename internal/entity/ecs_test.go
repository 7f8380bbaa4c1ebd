package entity

import (
	"testing"

	"go-td-core/internal/types"
)

func TestWorldIDsStartAtOne(t *testing.T) {
	w := NewWorld()
	if a, b := w.NewEntity(), w.NewEntity(); a != 1 || b != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", a, b)
	}
}

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry[string]()
	r.Add(5, "e")
	r.Add(2, "b")
	r.Add(9, "i")
	r.Add(2, "B")

	got := r.Values()
	want := []string{"e", "B", "i"}
	if len(got) != len(want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values = %v, want %v", got, want)
		}
	}

	if !r.Remove(2) || r.Remove(2) {
		t.Errorf("Remove should succeed once")
	}
	var ids []types.EntityID
	r.Each(func(id types.EntityID, _ string) { ids = append(ids, id) })
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 9 {
		t.Errorf("order after remove = %v", ids)
	}
}

func TestRegistryRemoveIf(t *testing.T) {
	r := NewRegistry[int]()
	for i := 1; i <= 5; i++ {
		r.Add(types.EntityID(i), i)
	}
	removed := r.RemoveIf(func(v int) bool { return v%2 == 0 })
	if len(removed) != 2 || removed[0] != 2 || removed[1] != 4 {
		t.Errorf("removed = %v", removed)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	if _, ok := r.Get(4); ok {
		t.Errorf("4 still present")
	}
}
