package input

// SimpleInputProcessor can process the input it is configured for and provide
// help information for that configuration.
type SimpleInputProcessor interface {

	// CapturesInput returns whether this processor "captures" input, i.E.
	// whether it ought to take priority in processing over other processors.
	CapturesInput() bool

	// ProcessInput attempts to process the provided input.
	// Returns whether the provided input "applied", i.E. the processor performed
	// an action based on the input.
	ProcessInput(key Key) bool

	// GetHelp returns the input help map for this processor.
	GetHelp() Help
}
