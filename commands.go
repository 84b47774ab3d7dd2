package depot

import "fmt"

// CommandFunc adapts a function to the Command interface
type CommandFunc func(*EntityManager) error

func (f CommandFunc) Playback(m *EntityManager) error {
	return f(m)
}

// Commands is an append-only log of structural changes. Systems enqueue while they
// iterate; the engine replays the log between phases, when no cursor is live.
type Commands struct {
	manager *EntityManager
	queue   []Command
}

func newCommands(manager *EntityManager) *Commands {
	return &Commands{manager: manager}
}

type spawnEmptyCommand struct{}

type spawnFromEntityCommand struct {
	entity Entity
}

type spawnFromComponentsCommand struct {
	values ComponentValues
}

type addComponentCommand struct {
	entity Entity
	comps  []Component
}

type setComponentCommand struct {
	entity Entity
	values ComponentValues
}

type removeComponentCommand struct {
	entity Entity
	comps  []Component
}

type destroyEntityCommand struct {
	entity Entity
}

var (
	_ Command = spawnEmptyCommand{}
	_ Command = spawnFromEntityCommand{}
	_ Command = spawnFromComponentsCommand{}
	_ Command = addComponentCommand{}
	_ Command = setComponentCommand{}
	_ Command = removeComponentCommand{}
	_ Command = destroyEntityCommand{}
	_ Command = CommandFunc(nil)
)

func (spawnEmptyCommand) Playback(m *EntityManager) error {
	m.SpawnEmpty()
	return nil
}

func (c spawnFromEntityCommand) Playback(m *EntityManager) error {
	_, err := m.SpawnFromEntity(c.entity)
	return err
}

func (c spawnFromComponentsCommand) Playback(m *EntityManager) error {
	_, err := m.SpawnFromComponents(c.values)
	return err
}

func (c addComponentCommand) Playback(m *EntityManager) error {
	return m.AddComponent(c.entity, c.comps...)
}

func (c setComponentCommand) Playback(m *EntityManager) error {
	return m.SetComponents(c.entity, c.values)
}

func (c removeComponentCommand) Playback(m *EntityManager) error {
	return m.RemoveComponent(c.entity, c.comps...)
}

// Destroying an entity that is already gone is not a failure
func (c destroyEntityCommand) Playback(m *EntityManager) error {
	m.DestroyEntity(c.entity)
	return nil
}

func (c *Commands) SpawnEmpty() {
	c.AddCommand(spawnEmptyCommand{})
}

func (c *Commands) SpawnFromEntity(e Entity) {
	c.AddCommand(spawnFromEntityCommand{entity: e})
}

func (c *Commands) SpawnFromComponents(values ComponentValues) {
	c.AddCommand(spawnFromComponentsCommand{values: values})
}

func (c *Commands) AddComponent(e Entity, comps ...Component) {
	c.AddCommand(addComponentCommand{entity: e, comps: comps})
}

func (c *Commands) SetComponent(e Entity, comp Component, value any) {
	c.AddCommand(setComponentCommand{entity: e, values: ComponentValues{comp: value}})
}

func (c *Commands) SetComponents(e Entity, values ComponentValues) {
	c.AddCommand(setComponentCommand{entity: e, values: values})
}

func (c *Commands) RemoveComponent(e Entity, comps ...Component) {
	c.AddCommand(removeComponentCommand{entity: e, comps: comps})
}

func (c *Commands) DestroyEntity(e Entity) {
	c.AddCommand(destroyEntityCommand{entity: e})
}

// AddCommand enqueues a caller-defined command
func (c *Commands) AddCommand(cmd Command) {
	if cmd == nil {
		return
	}
	c.queue = append(c.queue, cmd)
}

// Len reports how many commands are queued
func (c *Commands) Len() int {
	return len(c.queue)
}

// Playback replays queued commands in FIFO order until the queue is empty, including
// commands enqueued by commands being replayed. The first failing command is dropped and
// its error returned; commands behind it stay queued.
func (c *Commands) Playback() error {
	for len(c.queue) > 0 {
		cmd := c.queue[0]
		c.queue[0] = nil
		c.queue = c.queue[1:]
		if err := cmd.Playback(c.manager); err != nil {
			return fmt.Errorf("failed to play back %T: %w", cmd, err)
		}
	}
	c.queue = nil
	return nil
}
