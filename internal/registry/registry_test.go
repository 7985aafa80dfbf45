package registry

import (
	"testing"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/fake"
	"github.com/stretchr/testify/assert"
)

func TestInsertRemove_Invariants(t *testing.T) {
	r := New()
	c1 := fake.NewClient(1)
	c2 := fake.NewClient(2)

	r.Insert(1, c1, "netA")
	r.Insert(2, c2, "netA")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, r.NetCount("netA"))

	got, ok := r.Get(1)
	assert.True(t, ok)
	assert.Same(t, c1, got)

	r.Remove(1)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, r.NetCount("netA"))

	r.Remove(2)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.NetCount("netA"), "net key must be forgotten once its count hits zero")
	assert.Equal(t, 0, r.NetKeyCount())
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	r := New()
	r.Remove(999)
	assert.Equal(t, 0, r.Len())
}

func TestRange_VisitsAll(t *testing.T) {
	r := New()
	r.Insert(1, fake.NewClient(1), "a")
	r.Insert(2, fake.NewClient(2), "b")

	seen := map[int64]bool{}
	r.Range(func(id int64, _ api.Client) { seen[id] = true })
	assert.Equal(t, map[int64]bool{1: true, 2: true}, seen)
}
