package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "paddle"})
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.Greater(t, id.ArchetypeId(), uint32(0))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := storage.GetComponent(id, reflect.TypeFor[Name]())
	require.NotNil(t, name)
	assert.Equal(t, "paddle", name.(*Name).Value)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.Len(t, storage.Archetypes(), 1)
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Score(1))
	ptr := ecs.ReadComponent[Score](storage, first)

	// force several new chunks
	for i := range 500 {
		storage.Spawn(Score(i))
	}

	*ptr = 42
	assert.Equal(t, Score(42), *ecs.ReadComponent[Score](storage, first))
}

func TestDeleteReusesRows(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Health{Current: 1})
	storage.Spawn(Health{Current: 2})

	storage.Delete(a)
	assert.Nil(t, ecs.ReadComponent[Health](storage, a))

	c := storage.Spawn(Health{Current: 3})
	assert.Equal(t, a, c, "freed row should be reused")
	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, c).Current)

	// unknown ids are ignored
	storage.Delete(ecs.NewEntityId(99, 0))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing ecs.Singleton[Score]
	assert.False(t, missing.Exists(), "an unbound handle has no value")

	handle := ecs.NewSingleton[Score](storage, 7)
	other := ecs.NewSingleton[Score](storage, 100)
	require.True(t, other.Exists())
	assert.Equal(t, Score(7), *other.Get(), "the initializer only applies to a new singleton")

	*handle.Get() = 9
	assert.Equal(t, Score(9), *other.Get())

	// re-adding overwrites in place
	storage.AddSingleton(Score(11))
	assert.Equal(t, Score(11), *handle.Get())
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(Position{}, Name{})
	storage.Spawn(Position{}, Name{})
	storage.Spawn(Health{}, Name{})
	ecs.NewSingleton[Score](storage, 1)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Score"}, stats.SingletonTypes)

	counts := map[string]int{}
	for _, a := range stats.ArchetypeBreakdown {
		counts[a.Label()] = a.EntityCount
	}
	assert.Equal(t, map[string]int{
		"ecs_test.Position+ecs_test.Name": 2,
		"ecs_test.Name+ecs_test.Health":   1,
	}, counts)
}
