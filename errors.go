package depot

import "fmt"

// InvalidEntityError is returned by entity-addressed operations when the handle is out of
// range or its version no longer matches the slot
type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity: %v", e.Entity)
}

type ComponentLimitError struct {
	Component Component
}

func (e ComponentLimitError) Error() string {
	return fmt.Sprintf("cannot register component %q: schema holds the maximum of %d components", e.Component, MaxComponents)
}

type EngineRunningError struct{}

func (e EngineRunningError) Error() string {
	return "engine is already running"
}

type OptionsError struct {
	Field string
	Value any
}

func (e OptionsError) Error() string {
	return fmt.Sprintf("invalid engine option %s: %v", e.Field, e.Value)
}
