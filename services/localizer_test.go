package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func TestLocalize_TranslatesAndPersists(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		assert.Equal(t, true, strings.Contains(prompt, "first tip"))
		return "  Premier conseil. Deuxième conseil.  ", nil
	}}
	l := NewLocalizer(store, client, zap.NewNop())

	translated, err := l.Localize(context.Background(), "col-1", []string{"first tip", "second tip"})
	assert.Equal(t, nil, err)
	assert.Equal(t, "Premier conseil. Deuxième conseil.", translated)

	assert.Equal(t, 1, len(store.localized))
	assert.Equal(t, "col-1", store.localized[0].ParentID)
	assert.Equal(t, translated, store.localized[0].LocalizedText)
}

func TestLocalize_ErrorPropagates(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	l := NewLocalizer(store, client, zap.NewNop())

	_, err := l.Localize(context.Background(), "col-1", []string{"tip"})
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(store.localized))
}

func TestLocalize_EmptyResponseIsError(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) { return "   ", nil }}
	l := NewLocalizer(store, client, zap.NewNop())

	_, err := l.Localize(context.Background(), "col-1", []string{"tip"})
	assert.NotEqual(t, nil, err)
}

func TestAnalyzeStyle(t *testing.T) {
	text := "Le marché évolue comme jamais. Les banques s'adaptent rapidement. Vraiment?"
	m := AnalyzeStyle(text)

	assert.Equal(t, 1, m.Similes)
	assert.Equal(t, true, m.AvgSentenceLength > 0)
	assert.Equal(t, true, m.LexicalDiversity > 0 && m.LexicalDiversity <= 1)
	assert.Equal(t, true, m.ComplexWordsRatio > 0 && m.ComplexWordsRatio < 1)
	// Two declarative sentences out of three.
	assert.Equal(t, true, m.FormalityScore > 0.6 && m.FormalityScore < 0.7)
}

func TestAnalyzeStyle_Empty(t *testing.T) {
	m := AnalyzeStyle("")
	assert.Equal(t, 0.0, m.AvgSentenceLength)
	assert.Equal(t, 0, m.Similes)
	assert.Equal(t, 0, m.Fragments)
}

func TestAnalyzeStyle_Fragments(t *testing.T) {
	m := AnalyzeStyle("Oui. Le marché continue de progresser fortement.")
	assert.Equal(t, 1, m.Fragments)
}
