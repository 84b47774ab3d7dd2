package depot

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Reserved resource names the engine registers on construction
const (
	CommandsResource Resource = "commands"
	TimeResource     Resource = "time"
)

type EngineState int32

const (
	Stopped EngineState = iota
	Running
)

func (s EngineState) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Engine owns the entities, resources and systems and drives them once per FrameClock tick.
//
// Each tick runs PreUpdate, Update and PostUpdate, then FixedUpdate as many whole fixed
// steps as the accumulated time allows, then Render. Queued Commands are played back
// after every phase, and the query results of systems affected by newly created
// archetypes are rebound before the next phase runs.
type Engine struct {
	systems   *SystemManager
	resources *resourceStore
	entities  *EntityManager
	commands  *Commands
	time      *Time

	// cache is keyed by system handle; entries are patched in place
	cache map[SystemID]*QueryResult

	clock       FrameClock
	options     Options
	logger      *zap.Logger
	accumulator time.Duration
	state       atomic.Int32

	// tick is held by every clock tick and by Run, so a restart waits for the tick in flight
	tick sync.Mutex
}

func newEngine(opts ...EngineOption) (*Engine, error) {
	entities := newEntityManager()
	e := &Engine{
		systems:   newSystemManager(),
		resources: newResourceStore(),
		entities:  entities,
		commands:  newCommands(entities),
		time:      &Time{},
		cache:     make(map[SystemID]*QueryResult),
		options:   DefaultOptions(),
		logger:    Config.logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.options.Validate(); err != nil {
		return nil, err
	}
	if e.clock == nil {
		e.clock = NewTickerClock(time.Second / 60)
	}

	e.resources.Add(CommandsResource, e.commands)
	e.resources.Add(TimeResource, e.time)
	return e, nil
}

func (e *Engine) AddResource(name Resource, value any) {
	e.resources.Add(name, value)
}

func (e *Engine) GetResource(name Resource) (any, bool) {
	return e.resources.Get(name)
}

// RemoveResource deletes a resource. Query results naming it are refreshed on the next tick.
func (e *Engine) RemoveResource(name Resource) {
	e.resources.Remove(name)
}

// AddSystem registers system in the default group of schedule
func (e *Engine) AddSystem(schedule Schedule, system System) SystemID {
	return e.systems.Add(schedule, system)
}

func (e *Engine) AddSystemGroup(schedule Schedule, group *SystemGroup) {
	e.systems.AddGroup(schedule, group)
}

func (e *Engine) DefaultSystemGroup(schedule Schedule) (*SystemGroup, bool) {
	return e.systems.DefaultGroup(schedule)
}

func (e *Engine) RemoveSystem(schedule Schedule, group *SystemGroup, id SystemID) bool {
	if !e.systems.Remove(schedule, group, id) {
		return false
	}
	delete(e.cache, id)
	return true
}

// ClearEntities destroys every entity; archetypes and cached query bindings stay valid
func (e *Engine) ClearEntities() {
	e.entities.Clear()
}

func (e *Engine) Entities() *EntityManager {
	return e.entities
}

func (e *Engine) Commands() *Commands {
	return e.commands
}

func (e *Engine) Time() *Time {
	return e.time
}

func (e *Engine) State() EngineState {
	return EngineState(e.state.Load())
}

// Run builds every query result, runs the Start schedule once, plays back its commands and
// hands control to the FrameClock. Start systems are deregistered afterwards whether or
// not their query allowed them to run. Run blocks until a tick still in flight from a
// previous run has finished, so it must not be called from inside a system.
func (e *Engine) Run() error {
	if !e.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return EngineRunningError{}
	}
	if err := e.start(); err != nil {
		e.state.Store(int32(Stopped))
		return err
	}

	e.logger.Info("engine started",
		zap.Int("systems", len(e.cache)),
		zap.Duration("fixed_timestep", e.options.FixedTimestep),
		zap.Duration("max_timestep", e.options.MaxTimestep),
	)
	e.clock.Start(e.onTick)
	return nil
}

func (e *Engine) start() error {
	e.tick.Lock()
	defer e.tick.Unlock()

	e.buildQueryCache()
	e.resources.handleUpdates()

	*e.time = Time{}
	e.accumulator = 0
	return e.runStartSystems()
}

// Stop asks the FrameClock to stop delivering ticks. A tick in flight completes normally.
func (e *Engine) Stop() {
	if !e.state.CompareAndSwap(int32(Running), int32(Stopped)) {
		return
	}
	e.clock.Stop()
	e.logger.Info("engine stopped", zap.Duration("time", e.time.Current))
}

// Update advances the engine by one tick. timestamp is measured on the FrameClock's time
// base. A failing command playback aborts the remaining phases of the tick.
func (e *Engine) Update(timestamp time.Duration) error {
	if e.resources.hasUpdates() {
		e.refreshResourceViews()
	}

	delta := timestamp - e.time.Current
	if delta > e.options.MaxTimestep {
		delta = e.options.MaxTimestep
	}
	if delta < 0 {
		delta = 0
	}
	e.time.Delta = delta
	e.time.Current = timestamp

	// Start systems registered after Run get their single run on the next tick
	if len(e.systems.Groups(Start)) > 0 {
		if err := e.runStartSystems(); err != nil {
			return err
		}
	}

	for _, schedule := range []Schedule{PreUpdate, Update, PostUpdate} {
		e.runSchedule(schedule)
		if err := e.playback(); err != nil {
			return err
		}
	}

	e.accumulator += delta
	for e.accumulator >= e.options.FixedTimestep {
		e.time.FixedDelta = e.options.FixedTimestep
		if err := e.playback(); err != nil {
			return err
		}
		e.runSchedule(FixedUpdate)
		e.accumulator -= e.options.FixedTimestep
	}

	e.runSchedule(Render)
	return e.playback()
}

func (e *Engine) onTick(timestamp time.Duration) {
	e.tick.Lock()
	defer e.tick.Unlock()
	if e.State() != Running {
		return
	}
	if err := e.Update(timestamp); err != nil {
		e.logger.Error("tick failed, stopping engine", zap.Error(err), zap.Duration("timestamp", timestamp))
		e.Stop()
	}
}

func (e *Engine) runStartSystems() error {
	e.runSchedule(Start)
	for _, group := range e.systems.Groups(Start) {
		for _, node := range group.systems {
			delete(e.cache, node.id)
		}
	}
	e.systems.Clear(Start)
	return e.playback()
}

// runSchedule runs the groups of schedule in registration order. A system with a query
// only runs when its result holds at least one resource or one entity.
func (e *Engine) runSchedule(schedule Schedule) {
	for _, group := range e.systems.Groups(schedule) {
		if !group.CanRun(e.resources) {
			continue
		}
		for _, node := range group.systems {
			if node.query == nil {
				node.system.Run(nil)
				continue
			}
			result := e.resultFor(node)
			if result.Resources.Count() == 0 && result.Entities.Count() == 0 {
				continue
			}
			node.system.Run(result)
		}
	}
}

// playback replays queued commands and then rebinds the query results that a newly
// created archetype can match
func (e *Engine) playback() error {
	err := e.commands.Playback()
	e.invalidateQueryCache()
	if err != nil {
		e.logger.Warn("command playback failed", zap.Error(err), zap.Int("pending", e.commands.Len()))
	}
	return err
}

func (e *Engine) invalidateQueryCache() {
	if len(e.entities.newArchetypes) == 0 {
		return
	}
	for _, group := range e.systems.All() {
		for _, node := range group.systems {
			if node.query == nil || !node.query.selectsEntities() {
				continue
			}
			result, ok := e.cache[node.id]
			if !ok || !e.entities.newArchetypesMatch(node.query) {
				continue
			}
			chunks := e.entities.GetChunks(*node.query)
			result.Entities.bind(chunks)
			e.logger.Debug("query result rebound",
				zap.Uint64("system", uint64(node.id)),
				zap.Int("chunks", len(chunks)),
			)
		}
	}
	e.entities.ClearNewArchetypes()
}

func (e *Engine) refreshResourceViews() {
	updated := e.resources.updated()
	for _, group := range e.systems.All() {
		for _, node := range group.systems {
			if node.query == nil || !node.query.namesResource(updated) {
				continue
			}
			if result, ok := e.cache[node.id]; ok {
				result.Resources.rebuild(e.resources, node.query.Resources)
				result.Entities.bind(e.entities.GetChunks(*node.query))
			}
		}
	}
	e.resources.handleUpdates()
}

func (e *Engine) buildQueryCache() {
	for _, group := range e.systems.All() {
		for _, node := range group.systems {
			if node.query == nil {
				continue
			}
			e.cache[node.id] = e.buildResult(node.query)
		}
	}
}

// resultFor returns the cached result of node, building it for systems registered after Run
func (e *Engine) resultFor(node *systemNode) *QueryResult {
	if result, ok := e.cache[node.id]; ok {
		return result
	}
	result := e.buildResult(node.query)
	e.cache[node.id] = result
	return result
}

func (e *Engine) buildResult(q *Query) *QueryResult {
	return &QueryResult{
		Resources: newResources(e.resources, q.Resources),
		Entities:  newEntityAccess(e.entities, q.boundComponents(), e.entities.GetChunks(*q)),
	}
}
