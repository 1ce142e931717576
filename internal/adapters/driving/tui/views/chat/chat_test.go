package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

type mockAssistant struct {
	answer string
	err    error
	asked  []string
}

func (m *mockAssistant) Ask(_ context.Context, q string) (string, error) {
	m.asked = append(m.asked, q)
	return m.answer, m.err
}

func (m *mockAssistant) Tips(context.Context) ([]string, error) { return nil, nil }

func typeText(v *View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func answered(t *testing.T, cmd tea.Cmd) messages.ChatAnswered {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m, ok := c().(messages.ChatAnswered); ok {
			return m
		}
	}
	t.Fatal("no answer in batch")
	return messages.ChatAnswered{}
}

func TestView_Ask(t *testing.T) {
	a := &mockAssistant{answer: "Start with memoisation."}
	v := NewView(nil, a)
	v.Init()

	typeText(v, "how do I learn DP?")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, v.Waiting())
	assert.Contains(t, v.View(), "Thinking...")

	v.Update(answered(t, cmd))

	assert.False(t, v.Waiting())
	assert.Equal(t, []string{"how do I learn DP?"}, a.asked)
	require.Len(t, v.Transcript(), 1)
	assert.Equal(t, "Start with memoisation.", v.Transcript()[0].Answer)
	assert.False(t, v.Transcript()[0].Failed)
	assert.Contains(t, v.View(), "Start with memoisation.")
}

func TestView_FailureShowsFallback(t *testing.T) {
	a := &mockAssistant{err: errors.New("upstream")}
	v := NewView(nil, a)

	typeText(v, "hi")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(answered(t, cmd))

	require.Len(t, v.Transcript(), 1)
	assert.Equal(t, domain.ChatFallbackAnswer, v.Transcript()[0].Answer)
	assert.True(t, v.Transcript()[0].Failed)
}

func TestView_UnauthorizedRedirectsToSignIn(t *testing.T) {
	a := &mockAssistant{err: fmt.Errorf("chat: %w", domain.ErrUnauthorized)}
	v := NewView(nil, a)

	typeText(v, "hi")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, next := v.Update(answered(t, cmd))

	require.NotNil(t, next)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSignIn}, next())
	require.Len(t, v.Transcript(), 1)
	assert.True(t, v.Transcript()[0].Failed)
}

func TestView_EmptyQuestionIgnored(t *testing.T) {
	a := &mockAssistant{}
	v := NewView(nil, a)

	typeText(v, "   ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Waiting())
	assert.Empty(t, a.asked)
}

func TestView_EnterIgnoredWhileWaiting(t *testing.T) {
	v := NewView(nil, &mockAssistant{})
	typeText(v, "one")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	typeText(v, "two")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NilAssistant(t *testing.T) {
	v := NewView(nil, nil)
	typeText(v, "hello")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Update(answered(t, cmd))

	assert.Equal(t, domain.ChatFallbackAnswer, v.Transcript()[0].Answer)
}

func TestView_VisibleTail(t *testing.T) {
	v := NewView(nil, &mockAssistant{})
	v.SetDimensions(80, 16)
	for i := 0; i < 5; i++ {
		v.Update(messages.ChatAnswered{Question: fmt.Sprintf("q%d", i), Answer: "a"})
	}

	visible := v.visible()

	require.Len(t, visible, 2)
	assert.Equal(t, "q3", visible[0].Question)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
