// Package mask implements masked text input: compiling a template into a
// per-position cell table, converting between raw (user-typed) and formatted
// (templated) content, and reconciling edits made by a host text buffer.
package mask

import (
	"fmt"
	"strings"
)

// Class describes how a template symbol is treated.
// The zero value is furniture, i.E. a symbol which is inserted automatically
// and can not be typed by the user.
type Class struct {
	accept string
}

// Furniture is the class of symbols inserted automatically by the formatter.
var Furniture = Class{}

// OneOf returns the class of content slots which accept any of the given
// characters.
// Given no characters, it returns Furniture.
func OneOf(chars string) Class { return Class{accept: chars} }

// IsFurniture returns whether this is the furniture class.
func (c Class) IsFurniture() bool { return c.accept == "" }

// Accepts returns whether the given rune may be typed into a slot of this
// class.
func (c Class) Accepts(r rune) bool {
	return !c.IsFurniture() && strings.ContainsRune(c.accept, r)
}

// Chars returns the acceptable characters of this class (empty for
// furniture).
func (c Class) Chars() string { return c.accept }

// Classification maps each template symbol to its class.
type Classification map[rune]Class

// Cell is a compiled template position. It is either furniture or the k-th
// content slot.
type Cell struct {
	slot int
}

// FurnitureCell returns a furniture cell.
func FurnitureCell() Cell { return Cell{slot: -1} }

// SlotCell returns the cell for the k-th content slot.
func SlotCell(k int) Cell { return Cell{slot: k} }

// IsFurniture returns whether the cell is furniture.
func (c Cell) IsFurniture() bool { return c.slot < 0 }

// Slot returns the slot index of the cell, and false if it is furniture.
func (c Cell) Slot() (int, bool) {
	if c.slot < 0 {
		return 0, false
	}
	return c.slot, true
}

func (c Cell) String() string {
	if c.IsFurniture() {
		return "furniture"
	}
	return fmt.Sprintf("slot(%d)", c.slot)
}

// Mask is a compiled template.
// It is immutable and may be shared by any number of edit sessions.
type Mask struct {
	template []rune
	classes  Classification
	cells    []Cell
	slots    int
}

// UnclassifiedCharacterError is returned by Compile for a template character
// that has no entry in the classification.
type UnclassifiedCharacterError struct {
	Char     rune
	Position int
}

func (e *UnclassifiedCharacterError) Error() string {
	return fmt.Sprintf("character '%c' at position %d of the template is not classified", e.Char, e.Position)
}

// Compile compiles the given template using the given classification.
// Space is always furniture, regardless of the classification.
func Compile(template string, classification Classification) (*Mask, error) {
	classes := make(Classification, len(classification)+1)
	for r, c := range classification {
		classes[r] = c
	}
	classes[' '] = Furniture

	m := &Mask{
		template: []rune(template),
		classes:  classes,
	}
	m.cells = make([]Cell, 0, len(m.template))

	for pos, r := range m.template {
		class, ok := classes[r]
		if !ok {
			return nil, &UnclassifiedCharacterError{Char: r, Position: pos}
		}
		if class.IsFurniture() {
			m.cells = append(m.cells, FurnitureCell())
			continue
		}
		m.cells = append(m.cells, SlotCell(m.slots))
		m.slots++
	}

	return m, nil
}

// Template returns the template the mask was compiled from.
func (m *Mask) Template() string { return string(m.template) }

// Len returns the number of template positions.
func (m *Mask) Len() int { return len(m.cells) }

// Slots returns the number of content slots.
func (m *Mask) Slots() int { return m.slots }

// Cell returns the cell at the given template position.
func (m *Mask) Cell(pos int) Cell { return m.cells[pos] }

// Cells returns a copy of the compiled cells.
func (m *Mask) Cells() []Cell {
	result := make([]Cell, len(m.cells))
	copy(result, m.cells)
	return result
}

// Classification returns a copy of the effective classification (including
// the implicit entry for space).
func (m *Mask) Classification() Classification {
	result := make(Classification, len(m.classes))
	for r, c := range m.classes {
		result[r] = c
	}
	return result
}

func (m *Mask) accepts(pos int, r rune) bool {
	return m.classes[m.template[pos]].Accepts(r)
}
