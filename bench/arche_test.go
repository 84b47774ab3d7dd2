package bench

import (
	"testing"

	"github.com/mlange-42/arche/ecs"
)

func spawnArche(b *testing.B) (*ecs.World, ecs.ID, ecs.ID) {
	b.Helper()
	world := ecs.NewWorld(ecs.NewConfig().WithCapacityIncrement(1024))

	posID := ecs.ComponentID[Position](&world)
	velID := ecs.ComponentID[Velocity](&world)

	ecs.NewBuilder(&world, posID, velID).NewBatch(nPosVel)
	ecs.NewBuilder(&world, posID).NewBatch(nPos)
	return &world, posID, velID
}

func BenchmarkIterArche(b *testing.B) {
	b.StopTimer()
	world, posID, velID := spawnArche(b)
	filter := ecs.All(posID, velID)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		query := world.Query(filter)
		for query.Next() {
			pos := (*Position)(query.Get(posID))
			vel := (*Velocity)(query.Get(velID))
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
}

func BenchmarkMigrateArche(b *testing.B) {
	b.StopTimer()
	world, posID, velID := spawnArche(b)

	entities := make([]ecs.Entity, 0, nPos)
	query := world.Query(ecs.All(posID))
	for query.Next() {
		if en := query.Entity(); !world.Has(en, velID) {
			entities = append(entities, en)
		}
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for _, en := range entities {
			world.Add(en, velID)
		}
		for _, en := range entities {
			world.Remove(en, velID)
		}
	}
}
