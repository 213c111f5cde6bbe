package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func TestReviseAnswerPlan_ThreadsFeedback(t *testing.T) {
	var captured string
	store := newFakeStore()
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		captured = prompt
		return "revised plan", nil
	}}
	a := NewAnalyst(store, client, "test-model", zap.NewNop())

	_, planText, err := a.ReviseAnswerPlan(context.Background(), "q-1", "What changed?", "name your data sources")
	assert.Equal(t, nil, err)
	assert.Equal(t, "revised plan", planText)
	assert.Equal(t, true, strings.Contains(captured, "name your data sources"))

	assert.Equal(t, 1, len(store.plans))
	assert.Equal(t, 2, store.plans[0].Version)
	assert.Equal(t, "q-1", store.plans[0].QuestionID)
}

func TestCreateAnswerPlan_Versions(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) { return "plan", nil }}
	a := NewAnalyst(store, client, "test-model", zap.NewNop())

	planID, _, err := a.CreateAnswerPlan(context.Background(), "q-1", "What changed?")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", planID)
	assert.Equal(t, 1, store.plans[0].Version)
}

func TestExecuteAnalysis_ErrorPathPersistsDefaults(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	a := NewAnalyst(store, client, "test-model", zap.NewNop())

	points := a.ExecuteAnalysis(context.Background(), "q-1", "What changed?", "plan")
	assert.Equal(t, errorFindings, points)

	// The error findings are still written for traceability.
	assert.Equal(t, 1, len(store.results))
	assert.Equal(t, errorFindings, store.results[0].BulletPoints)
}

func TestExecuteAnalysis_ParsesBullets(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "- adoption is up\n- costs are down", nil
	}}
	a := NewAnalyst(store, client, "test-model", zap.NewNop())

	points := a.ExecuteAnalysis(context.Background(), "q-1", "What changed?", "plan")
	assert.Equal(t, []string{"adoption is up", "costs are down"}, points)
	assert.Equal(t, 1, len(store.results))
}
