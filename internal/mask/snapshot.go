package mask

import "fmt"

// FurnitureSpec is the textual class specification of furniture, as used in
// configuration files and snapshots.
const FurnitureSpec = "furniture"

// ParseClassification converts a textual classification (symbol to either
// FurnitureSpec or the string of accepted characters) to a Classification.
func ParseClassification(spec map[string]string) (Classification, error) {
	result := make(Classification, len(spec))
	for symbol, class := range spec {
		symbolRunes := []rune(symbol)
		if len(symbolRunes) != 1 {
			return nil, fmt.Errorf("symbol '%s' is not a single character", symbol)
		}
		switch class {
		case FurnitureSpec:
			result[symbolRunes[0]] = Furniture
		case "":
			return nil, fmt.Errorf("symbol '%s' has an empty class", symbol)
		default:
			result[symbolRunes[0]] = OneOf(class)
		}
	}
	return result, nil
}

// FormatClassification is the inverse of ParseClassification.
func FormatClassification(c Classification) map[string]string {
	result := make(map[string]string, len(c))
	for r, class := range c {
		if class.IsFurniture() {
			result[string(r)] = FurnitureSpec
		} else {
			result[string(r)] = class.Chars()
		}
	}
	return result
}

// Symbols returns the template's distinct symbols in order of first
// appearance.
func (m *Mask) Symbols() []rune {
	seen := map[rune]bool{}
	result := []rune{}
	for _, r := range m.template {
		if !seen[r] {
			seen[r] = true
			result = append(result, r)
		}
	}
	return result
}

// Snapshot is the persistable state of a Reconciler.
// The compiled mask is not part of it; it is recompiled on restore.
type Snapshot struct {
	Configured  bool              `yaml:"configured"`
	Template    string            `yaml:"template,omitempty"`
	Symbols     map[string]string `yaml:"symbols,omitempty"`
	ShowHint    bool              `yaml:"show-hint"`
	ValidLength int               `yaml:"valid-length"`
	Text        string            `yaml:"text"`
}

// Snapshot returns the persistable state of the reconciler.
func (r *Reconciler) Snapshot() Snapshot {
	s := Snapshot{
		Configured:  r.mask != nil,
		ShowHint:    r.showHint,
		ValidLength: r.session.ValidLength,
		Text:        r.session.Text,
	}
	if r.mask != nil {
		s.Template = r.mask.Template()
		s.Symbols = FormatClassification(r.mask.classes)
	}
	return s
}

// Restore reinstates a state previously returned by Snapshot.
// If the snapshot can not be restored, the reconciler is left unchanged.
func (r *Reconciler) Restore(s Snapshot) error {
	if !s.Configured {
		r.Reset()
		r.showHint = s.ShowHint
		r.session.Text = s.Text
		r.session.LastCaret = len([]rune(s.Text))
		return nil
	}

	classification, err := ParseClassification(s.Symbols)
	if err != nil {
		return fmt.Errorf("invalid symbols in snapshot (%w)", err)
	}
	m, err := Compile(s.Template, classification)
	if err != nil {
		return fmt.Errorf("could not recompile snapshot mask (%w)", err)
	}
	textLen := len([]rune(s.Text))
	if textLen > m.Len() {
		return fmt.Errorf("text of length %d exceeds template of length %d", textLen, m.Len())
	}
	if s.ValidLength < -1 || s.ValidLength >= textLen {
		return fmt.Errorf("valid length %d does not fit text of length %d", s.ValidLength, textLen)
	}

	r.mask = m
	r.showHint = s.ShowHint
	r.session = EditSession{
		LastCaret:      s.ValidLength + 1,
		ValidLength:    s.ValidLength,
		LastFilledSlot: lastSlotBefore(m, s.ValidLength+1),
		Text:           s.Text,
	}
	return nil
}

func lastSlotBefore(m *Mask, cutoff int) int {
	last := -1
	for pos := 0; pos < cutoff && pos < len(m.cells); pos++ {
		if slot, ok := m.cells[pos].Slot(); ok {
			last = slot
		}
	}
	return last
}
