package usecase

import (
	"reflect"
	"testing"
)

func TestUnionFind(t *testing.T) {
	t.Run("starts with singletons", func(t *testing.T) {
		uf := newUnionFind(3)
		want := [][]int{{0}, {1}, {2}}
		if got := uf.components(); !reflect.DeepEqual(got, want) {
			t.Errorf("components = %v, want %v", got, want)
		}
	})

	t.Run("joins transitively", func(t *testing.T) {
		uf := newUnionFind(6)
		uf.union(4, 2)
		uf.union(2, 0)
		uf.union(5, 3)
		uf.union(0, 4)

		want := [][]int{{0, 2, 4}, {1}, {3, 5}}
		if got := uf.components(); !reflect.DeepEqual(got, want) {
			t.Errorf("components = %v, want %v", got, want)
		}
		if uf.find(0) != uf.find(4) {
			t.Error("0 and 4 should share a root")
		}
		if uf.find(1) == uf.find(3) {
			t.Error("1 and 3 should not share a root")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := newUnionFind(0).components(); len(got) != 0 {
			t.Errorf("components = %v, want none", got)
		}
	})
}
