package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func TestDetectAIContent_ParsesVerdict(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) {
		return "```json\n{\"AI_Content_Score\": 35, \"Human_Writing_Score\": 65, \"Reason\": \"mixed\"}\n```", nil
	}}
	s := NewQualityScorer(newFakeStore(), client, nil, zap.NewNop())

	score, err := s.DetectAIContent(context.Background(), "some text")
	assert.Equal(t, nil, err)
	assert.Equal(t, 65.0, score)
}

func TestDetectAIContent_BadJSON(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) {
		return "not json at all", nil
	}}
	s := NewQualityScorer(newFakeStore(), client, nil, zap.NewNop())

	_, err := s.DetectAIContent(context.Background(), "some text")
	assert.NotEqual(t, nil, err)
}

func TestVerifyFacts(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) {
		return "- Factually Accurate: true\n- Reasoning: claims check out", nil
	}}
	s := NewQualityScorer(newFakeStore(), client, nil, zap.NewNop())

	verified, analysis, err := s.VerifyFacts(context.Background(), "content")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, verified)
	assert.Equal(t, true, strings.Contains(analysis, "claims check out"))
}

func TestVerifyFacts_False(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) {
		return "- Factually Accurate: false\n- Reasoning: unsupported claims", nil
	}}
	s := NewQualityScorer(newFakeStore(), client, nil, zap.NewNop())

	verified, _, err := s.VerifyFacts(context.Background(), "content")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, verified)
}

func TestTrustedSourceScore(t *testing.T) {
	store := newFakeStore()
	store.sourceLinks = []string{
		"https://www.reuters.com/world/africa/a",
		"https://random.example/b",
		"https://www.bbc.com/news/c",
		"https://university.edu/report",
	}
	s := NewQualityScorer(store, &fakeLLM{}, []string{".edu", "bbc.com", "reuters.com"}, zap.NewNop())

	score, err := s.TrustedSourceScore(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 75.0, score)
}

func TestTrustedSourceScore_NoSources(t *testing.T) {
	s := NewQualityScorer(newFakeStore(), &fakeLLM{}, []string{"bbc.com"}, zap.NewNop())

	score, err := s.TrustedSourceScore(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 0.0, score)
}

func TestScore_MetricFailuresDegradeToZero(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	s := NewQualityScorer(store, client, nil, zap.NewNop())

	s.Score(context.Background(), "article-1", "content")

	assert.Equal(t, 1, len(store.metrics))
	m := store.metrics[0]
	assert.Equal(t, "article-1", m.ParentID)
	assert.Equal(t, 0.0, m.HumanWritingScore)
	assert.Equal(t, false, m.FactVerification)
	assert.Equal(t, 0.0, m.TrustedSourceScore)
	assert.Equal(t, 0.0, m.PlagiarismScore)
}
