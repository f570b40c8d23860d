// Package builder maintains a survey's ordered component list during
// authoring: insert on drop, patch by id, delete by id, with linear
// undo/redo over full-list snapshots.
package builder

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/surveyforge/surveyforge/model"
)

var ErrUnknownType = errors.New("unknown component type")

// defaultOptions seed choice-bearing components dropped from the palette.
var defaultOptions = []string{"Option 1", "Option 2", "Option 3"}

// Builder is one authoring session. Not safe for concurrent use.
type Builder struct {
	components []model.Component
	history    [][]model.Component
	cursor     int

	selected string // id of the component open in the property editor, "" if none
}

// New starts a session over an existing component list (empty for a new
// survey). The initial list is history entry zero.
func New(components []model.Component) *Builder {
	b := &Builder{components: snapshot(components)}
	b.history = [][]model.Component{snapshot(components)}
	return b
}

// Components returns a copy of the current list.
func (b *Builder) Components() []model.Component {
	return snapshot(b.components)
}

// InsertFromPalette constructs a fresh component from a dragged palette
// template and inserts it at index. The id is unique and never reused, the
// label derives from the template name, and choice-bearing types get the
// default options. An unknown type leaves list and history untouched.
func (b *Builder) InsertFromPalette(t model.ComponentType, index int) (model.Component, error) {
	name, ok := model.PaletteName(t)
	if !ok {
		return model.Component{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	c := model.Component{
		ID:       "comp-" + uuid.NewString(),
		Type:     t,
		Label:    name + " Question",
		Required: false,
	}
	if model.ChoiceBearing(t) {
		c.Options = append([]string(nil), defaultOptions...)
	}

	b.insertAt(c, index)
	return c, nil
}

// Insert places an already-built component at index. Index is clamped to
// the valid 0..len range. Rejects components that would corrupt the list
// (unknown type, duplicate or missing id) without touching history.
func (b *Builder) Insert(c model.Component, index int) error {
	if !model.KnownType(c.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	if c.ID == "" {
		return errors.New("component has no id")
	}
	for _, existing := range b.components {
		if existing.ID == c.ID {
			return fmt.Errorf("duplicate component id %q", c.ID)
		}
	}
	b.insertAt(c, index)
	return nil
}

func (b *Builder) insertAt(c model.Component, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(b.components) {
		index = len(b.components)
	}

	next := make([]model.Component, 0, len(b.components)+1)
	next = append(next, b.components[:index]...)
	next = append(next, c)
	next = append(next, b.components[index:]...)
	b.commit(next)
}

// Update merges patch into the component matching id and records a new
// history entry. Unknown ids are a no-op: nothing changes, nothing is
// recorded. A selected component keeps its selection across the merge.
func (b *Builder) Update(id string, patch Patch) {
	idx := b.indexOf(id)
	if idx < 0 {
		return
	}

	next := snapshot(b.components)
	patch.apply(&next[idx])
	b.commit(next)
}

// Delete removes the component matching id. Unknown ids are a no-op.
// Deleting the selected component clears the selection.
func (b *Builder) Delete(id string) {
	idx := b.indexOf(id)
	if idx < 0 {
		return
	}

	next := make([]model.Component, 0, len(b.components)-1)
	next = append(next, b.components[:idx]...)
	next = append(next, b.components[idx+1:]...)
	b.commit(next)

	if b.selected == id {
		b.selected = ""
	}
}

// Select marks a component as open in the property editor.
func (b *Builder) Select(id string) {
	if b.indexOf(id) >= 0 {
		b.selected = id
	}
}

// Selected returns the currently selected component, reflecting any
// updates merged since selection. ok is false when nothing is selected.
func (b *Builder) Selected() (c model.Component, ok bool) {
	idx := b.indexOf(b.selected)
	if idx < 0 {
		return model.Component{}, false
	}
	return b.components[idx], true
}

func (b *Builder) CanUndo() bool { return b.cursor > 0 }
func (b *Builder) CanRedo() bool { return b.cursor < len(b.history)-1 }

// Undo restores the previous snapshot. No-op at the start of history.
func (b *Builder) Undo() {
	if !b.CanUndo() {
		return
	}
	b.cursor--
	b.components = snapshot(b.history[b.cursor])
}

// Redo restores the next snapshot. No-op at the end of history.
func (b *Builder) Redo() {
	if !b.CanRedo() {
		return
	}
	b.cursor++
	b.components = snapshot(b.history[b.cursor])
}

// commit installs next as the current list and appends it to history,
// discarding any redo tail beyond the cursor first. Linear history: after
// a fresh edit there is nothing to redo.
func (b *Builder) commit(next []model.Component) {
	b.components = next
	b.history = append(b.history[:b.cursor+1], snapshot(next))
	b.cursor = len(b.history) - 1
}

func (b *Builder) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range b.components {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func snapshot(components []model.Component) []model.Component {
	out := make([]model.Component, len(components))
	copy(out, components)
	return out
}

// Patch is a partial component update. Nil fields are left alone.
// ID and Type are absent on purpose: both are immutable after creation.
type Patch struct {
	Label       *string
	Description *string
	Required    *bool
	Placeholder *string
	Min         *float64
	Max         *float64
	Options     []string
	Rows        []string
	Columns     []string
	ImageURL    *string
	Validation  *model.TextValidation
	Pattern     *string
	Message     *string
}

func (p Patch) apply(c *model.Component) {
	if p.Label != nil {
		c.Label = *p.Label
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Required != nil {
		c.Required = *p.Required
	}
	if p.Placeholder != nil {
		c.Placeholder = *p.Placeholder
	}
	if p.Min != nil {
		c.Min = p.Min
	}
	if p.Max != nil {
		c.Max = p.Max
	}
	if p.Options != nil {
		c.Options = append([]string(nil), p.Options...)
	}
	if p.Rows != nil {
		c.Rows = append([]string(nil), p.Rows...)
	}
	if p.Columns != nil {
		c.Columns = append([]string(nil), p.Columns...)
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.Validation != nil {
		c.Validation = *p.Validation
	}
	if p.Pattern != nil {
		c.Pattern = *p.Pattern
	}
	if p.Message != nil {
		c.Message = *p.Message
	}
}
