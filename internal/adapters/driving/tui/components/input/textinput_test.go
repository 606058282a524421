package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponseInput(t *testing.T) {
	in := NewResponseInput(nil)

	require.NotNil(t, in)
	assert.False(t, in.Focused())
	assert.Empty(t, in.Value())
}

func TestResponseInput_TypingWhenFocused(t *testing.T) {
	in := NewResponseInput(nil)
	in.Focus()

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ok ")})

	assert.True(t, in.Focused())
	assert.Equal(t, "ok", in.Value())
}

func TestResponseInput_BlurClears(t *testing.T) {
	in := NewResponseInput(nil)
	in.Focus()
	in.SetValue("draft")

	in.Blur()

	assert.False(t, in.Focused())
	assert.Empty(t, in.Value())
}

func TestResponseInput_View(t *testing.T) {
	in := NewResponseInput(nil)

	assert.Contains(t, in.View(), "Answer:")
}
