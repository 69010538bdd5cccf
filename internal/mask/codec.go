package mask

import "strings"

// RenderOptions parameterize Render.
type RenderOptions struct {
	// ShowHint renders the uncommitted rest of the template after the valid
	// boundary. Without it the output is cut off at the boundary.
	ShowHint bool

	// Deletion signals that the raw content was just shortened. Furniture
	// following the last raw rune is then not committed again.
	Deletion bool
}

// Rendering is the result of rendering raw content into a mask.
type Rendering struct {
	// Text is the formatted text, i.E. the committed prefix followed by the
	// hint suffix (if any).
	Text string

	// ValidLength is the index of the last committed template position, -1 if
	// nothing is committed.
	ValidLength int

	// LastFilledSlot is the index of the last slot the render pass reached,
	// -1 if it did not reach any.
	LastFilledSlot int
}

// Committed returns the committed prefix of the rendered text.
func (r Rendering) Committed() string {
	return string([]rune(r.Text)[:r.ValidLength+1])
}

// Hint returns the hint suffix of the rendered text.
func (r Rendering) Hint() string {
	return string([]rune(r.Text)[r.ValidLength+1:])
}

// ExtractRaw recovers the raw content from formatted text: the runes at all
// slot positions before cutoff (exclusive).
func ExtractRaw(formatted string, m *Mask, cutoff int) string {
	runes := []rune(formatted)

	var sb strings.Builder
	for pos, cell := range m.cells {
		if pos >= cutoff || pos >= len(runes) {
			break
		}
		if cell.IsFurniture() {
			continue
		}
		sb.WriteRune(runes[pos])
	}
	return sb.String()
}

// Render formats raw content according to the mask.
//
// The template is walked once, in order. Furniture is inserted automatically,
// raw runes are placed into the slots accepting them, and the first rune a
// slot does not accept ends the committed part (it and everything after it is
// dropped). Whatever is left of the template after the committed part is the
// hint suffix.
func Render(raw string, m *Mask, opts RenderOptions) Rendering {
	result := Rendering{ValidLength: -1, LastFilledSlot: -1}

	rawRunes := []rune(raw)
	if len(rawRunes) == 0 {
		return result
	}

	out := make([]rune, 0, len(m.template))
	hintFrom := -1

walk:
	for pos, cell := range m.cells {
		slot, isSlot := cell.Slot()

		if !isSlot {
			if opts.Deletion && result.LastFilledSlot == len(rawRunes)-1 {
				hintFrom = pos
				break walk
			}
			out = append(out, m.template[pos])
			result.ValidLength++
			continue
		}

		result.LastFilledSlot = slot
		switch {
		case slot >= len(rawRunes):
			if opts.ShowHint {
				hintFrom = pos
			}
			break walk
		case !m.accepts(pos, rawRunes[slot]):
			hintFrom = pos
			break walk
		default:
			out = append(out, rawRunes[slot])
			result.ValidLength++
		}
	}

	if hintFrom >= 0 {
		out = append(out, m.template[hintFrom:]...)
	}
	result.Text = string(out)

	return result
}
