package input

// Action is something bound to a key.
type Action interface {
	Do()
	Explain() string
}

// SimpleAction models an action as a plain func() which is called on Do.
type SimpleAction struct {
	action  func()
	explain string
}

// Do performs this action.
func (a *SimpleAction) Do() { a.action() }

// Explain returns what this action does.
func (a *SimpleAction) Explain() string { return a.explain }

// NewSimpleAction returns a pointer to a new simple action, calling the given
// function on Do.
func NewSimpleAction(explanation string, action func()) *SimpleAction {
	return &SimpleAction{
		action:  action,
		explain: explanation,
	}
}
