package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyforge/surveyforge/model"
)

func ids(components []model.Component) []string {
	out := make([]string, len(components))
	for i, c := range components {
		out[i] = c.ID
	}
	return out
}

func TestInsertFromPalette(t *testing.T) {
	b := New(nil)

	c, err := b.InsertFromPalette(model.TypeDropdown, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Dropdown Question", c.Label)
	assert.False(t, c.Required)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, c.Options)

	// non-choice types get no default options
	c2, err := b.InsertFromPalette(model.TypeTextInput, 1)
	require.NoError(t, err)
	assert.Equal(t, "Text Input Question", c2.Label)
	assert.Nil(t, c2.Options)

	assert.NotEqual(t, c.ID, c2.ID)
}

func TestInsertFromPalette_UnknownType(t *testing.T) {
	b := New([]model.Component{{ID: "a", Type: model.TypeTextInput}})

	_, err := b.InsertFromPalette("bogus", 0)
	require.ErrorIs(t, err, ErrUnknownType)

	// list and history untouched
	assert.Equal(t, []string{"a"}, ids(b.Components()))
	assert.False(t, b.CanUndo())
}

func TestInsert_IndexClamping(t *testing.T) {
	b := New([]model.Component{{ID: "a", Type: model.TypeTextInput}})

	require.NoError(t, b.Insert(model.Component{ID: "start", Type: model.TypeNumber}, -5))
	require.NoError(t, b.Insert(model.Component{ID: "end", Type: model.TypeNumber}, 99))

	assert.Equal(t, []string{"start", "a", "end"}, ids(b.Components()))
}

func TestInsert_Rejections(t *testing.T) {
	b := New([]model.Component{{ID: "a", Type: model.TypeTextInput}})

	assert.Error(t, b.Insert(model.Component{ID: "x", Type: "bogus"}, 0))
	assert.Error(t, b.Insert(model.Component{Type: model.TypeNumber}, 0))
	assert.Error(t, b.Insert(model.Component{ID: "a", Type: model.TypeNumber}, 0))

	assert.Equal(t, []string{"a"}, ids(b.Components()))
	assert.False(t, b.CanUndo())
}

func TestUndoRedo(t *testing.T) {
	b := New([]model.Component{{ID: "A", Type: model.TypeTextInput}})

	require.NoError(t, b.Insert(model.Component{ID: "B", Type: model.TypeTextInput}, 1))
	assert.Equal(t, []string{"A", "B"}, ids(b.Components()))

	b.Undo()
	assert.Equal(t, []string{"A"}, ids(b.Components()))

	b.Redo()
	assert.Equal(t, []string{"A", "B"}, ids(b.Components()))

	// no-ops at the ends
	b.Redo()
	assert.Equal(t, []string{"A", "B"}, ids(b.Components()))
	b.Undo()
	b.Undo()
	assert.Equal(t, []string{"A"}, ids(b.Components()))
}

func TestMutationAfterUndoDiscardsRedoTail(t *testing.T) {
	b := New([]model.Component{{ID: "A", Type: model.TypeTextInput}})
	require.NoError(t, b.Insert(model.Component{ID: "B", Type: model.TypeTextInput}, 1))

	b.Undo()
	require.NoError(t, b.Insert(model.Component{ID: "C", Type: model.TypeTextInput}, 1))
	assert.Equal(t, []string{"A", "C"}, ids(b.Components()))

	// B's branch is gone for good
	assert.False(t, b.CanRedo())
	b.Redo()
	assert.Equal(t, []string{"A", "C"}, ids(b.Components()))
}

func TestUpdate(t *testing.T) {
	b := New([]model.Component{
		{ID: "q1", Type: model.TypeTextInput, Label: "Old", Required: false},
	})

	label := "New label"
	required := true
	b.Update("q1", Patch{Label: &label, Required: &required})

	got := b.Components()[0]
	assert.Equal(t, "New label", got.Label)
	assert.True(t, got.Required)
	// untouched fields survive the merge
	assert.Equal(t, model.TypeTextInput, got.Type)

	b.Undo()
	assert.Equal(t, "Old", b.Components()[0].Label)
}

func TestUpdate_UnknownIdIsNoop(t *testing.T) {
	b := New([]model.Component{{ID: "q1", Type: model.TypeTextInput}})

	label := "x"
	b.Update("missing", Patch{Label: &label})

	assert.False(t, b.CanUndo(), "no history entry for a no-op")
}

func TestUpdate_RefreshesSelection(t *testing.T) {
	b := New([]model.Component{{ID: "q1", Type: model.TypeTextInput, Label: "Old"}})
	b.Select("q1")

	label := "New"
	b.Update("q1", Patch{Label: &label})

	selected, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "New", selected.Label)
}

func TestDelete(t *testing.T) {
	b := New([]model.Component{
		{ID: "q1", Type: model.TypeTextInput},
		{ID: "q2", Type: model.TypeNumber},
	})
	b.Select("q2")

	b.Delete("q2")
	assert.Equal(t, []string{"q1"}, ids(b.Components()))

	_, ok := b.Selected()
	assert.False(t, ok, "deleting the selected component clears selection")

	b.Delete("nope")
	assert.Equal(t, []string{"q1"}, ids(b.Components()))
}

func TestHistoryIsolation(t *testing.T) {
	// mutating a returned snapshot must not corrupt history
	b := New([]model.Component{{ID: "q1", Type: model.TypeTextInput, Label: "orig"}})

	snapshot := b.Components()
	snapshot[0].Label = "mutated"

	assert.Equal(t, "orig", b.Components()[0].Label)
}
