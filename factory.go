package depot

type factory struct{}

var Factory factory

func (f factory) NewEntityManager() *EntityManager {
	return newEntityManager()
}

// NewCommands returns a command log that plays back against manager
func (f factory) NewCommands(manager *EntityManager) *Commands {
	return newCommands(manager)
}

func (f factory) NewEntityAccess(manager *EntityManager, query Query) *EntityAccess {
	return newEntityAccess(manager, query.boundComponents(), manager.GetChunks(query))
}

func (f factory) NewSystemGroup(canRun RunCondition, systems ...System) *SystemGroup {
	return NewSystemGroup(canRun, systems...)
}

func (f factory) NewEngine(opts ...EngineOption) (*Engine, error) {
	return newEngine(opts...)
}
