package tui

import "github.com/goliatone/go-jsonfields/pkg/jsonfmt"

// State collects answers in prompt order.
type State struct {
	values *jsonfmt.Object
}

// NewState creates an empty state.
func NewState() *State {
	return &State{values: jsonfmt.NewObject()}
}

// Set records the answer for name. Re-setting a name keeps its position.
func (s *State) Set(name string, value any) {
	s.values.Set(name, value)
}

// Get returns the recorded answer for name.
func (s *State) Get(name string) (any, bool) {
	return s.values.Get(name)
}

// Names lists recorded names in prompt order.
func (s *State) Names() []string {
	return s.values.Keys()
}

// Object exposes the answers as an ordered JSON object.
func (s *State) Object() *jsonfmt.Object {
	return s.values
}
