package input

// Keyspec is a key sequence specification, e.g. "<c-u>" or "9001<bs>".
type Keyspec string

// Actionspec names an action a key can be bound to, e.g. "backspace".
type Actionspec string

// InputConfig is the key binding configuration.
type InputConfig struct {
	Field map[Keyspec]Actionspec `yaml:"field"`
}

// Help maps key identifiers to explanations of what they do.
type Help = map[string]string
