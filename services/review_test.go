package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func TestProvideFeedback(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "add a regional breakdown", nil
	}}
	r := NewReviewer(store, client, "test-model", zap.NewNop())

	feedback, err := r.ProvideFeedback(context.Background(), "plan-1", "plan text")
	assert.Equal(t, nil, err)
	assert.Equal(t, "add a regional breakdown", feedback)

	assert.Equal(t, 1, len(store.feedback))
	assert.Equal(t, "plan-1", store.feedback[0].AnswerPlanID)
}

func TestProvideFeedback_ErrorPropagates(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	r := NewReviewer(store, client, "test-model", zap.NewNop())

	_, err := r.ProvideFeedback(context.Background(), "plan-1", "plan text")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(store.feedback))
}

func TestGenerateTipSheet(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "- invest in mobile\n- watch regulation", nil
	}}
	r := NewReviewer(store, client, "test-model", zap.NewNop())

	tips := r.GenerateTipSheet(context.Background(), "col-1", []string{"Question 1: q", "Findings:", "f"}, "insights")
	assert.Equal(t, []string{"invest in mobile", "watch regulation"}, tips)

	assert.Equal(t, 1, len(store.tipSheets))
	assert.Equal(t, "insights", store.tipSheets[0].ParentType)
}

func TestGenerateTipSheet_EmptyFindingsUsesFallback(t *testing.T) {
	store := newFakeStore()
	r := NewReviewer(store, &fakeLLM{}, "test-model", zap.NewNop())

	tips := r.GenerateTipSheet(context.Background(), "col-1", nil, "insights")
	assert.Equal(t, fallbackTips, tips)
	assert.Equal(t, 1, len(store.tipSheets))
	assert.Equal(t, fallbackTips, store.tipSheets[0].FinalBulletPoints)
}

func TestGenerateTipSheet_ModelFailureUsesFallback(t *testing.T) {
	store := newFakeStore()
	client := &fakeLLM{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	r := NewReviewer(store, client, "test-model", zap.NewNop())

	tips := r.GenerateTipSheet(context.Background(), "col-1", []string{"finding"}, "insights")
	assert.Equal(t, fallbackTips, tips)
	assert.Equal(t, 1, len(store.tipSheets))
}
