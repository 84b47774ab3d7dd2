/*
Package depot provides an archetype-based entity store with a phased system scheduler.

Entities are value handles (slot index plus version) whose components are named at
runtime. Entities sharing the same component names live together in one chunk, a set of
parallel columns, so systems walk dense rows instead of chasing maps.

Core Concepts:

  - Entity: an index and version; stale handles are detected forever.
  - Component: a named value carried by an entity.
  - Archetype: a distinct set of component names with its own chunk.
  - Query: All/None gate archetypes, Any widens the bound accessor, Resources name globals.
  - Commands: deferred structural changes replayed between phases.
  - Engine: runs Start once, then PreUpdate, Update, PostUpdate, FixedUpdate and Render
    every tick.

Basic Usage:

	engine, _ := depot.Factory.NewEngine()

	engine.AddSystem(depot.Start, depot.NewSystem(
		depot.Query{Resources: []depot.Resource{depot.CommandsResource}},
		func(result *depot.QueryResult) {
			commands, _ := depot.ResourceAs[*depot.Commands](result.Resources, depot.CommandsResource)
			commands.SpawnFromComponents(depot.ComponentValues{
				"position": &Position{},
				"velocity": &Velocity{X: 1},
			})
		},
	))

	engine.AddSystem(depot.Update, depot.NewSystem(
		depot.Query{All: []depot.Component{"position", "velocity"}},
		func(result *depot.QueryResult) {
			for _, access := range result.Entities.All() {
				pos := access.Get("position").(*Position)
				vel := access.Get("velocity").(*Velocity)
				pos.X += vel.X
			}
		},
	))

	engine.Run()

Structural changes (spawning, destroying, adding or removing components) must go through
Commands while systems run: cursors hold raw row positions that a migration would move.
*/
package depot
