package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

const feedbackPrompt = `Review the following analysis plan and provide constructive feedback:
%s

Consider:
1. Comprehensiveness of the approach
2. Potential gaps or blind spots
3. Methodological rigor
4. Additional perspectives or data sources to consider

Format your feedback as specific, actionable suggestions.`

const tipSheetPrompt = `Based on the following analysis points, create a concise and impactful tip sheet:
%s

The tip sheet should:
1. Highlight the most important findings
2. Present information in a clear, actionable format
3. Include relevant statistics and data points
4. Be easily digestible for a general audience

Format each point as a clear, actionable bullet point starting with "-".
Focus on practical implications and actionable insights.`

// fallbackTips are persisted when tip sheet synthesis fails completely.
var fallbackTips = []string{
	"Consider the broader economic implications of current events",
	"Focus on digital transformation opportunities",
	"Prepare for emerging challenges in the financial sector",
}

// Reviewer critiques analysis plans and synthesizes the final tip sheet.
type Reviewer struct {
	store  Store
	llm    llm.Client
	agent  models.AgentInfo
	logger *zap.Logger
}

func NewReviewer(store Store, client llm.Client, model string, logger *zap.Logger) *Reviewer {
	return &Reviewer{
		store:  store,
		llm:    client,
		agent:  models.AgentInfo{Name: "Review Agent", Type: model, Role: "Review"},
		logger: logger,
	}
}

// ProvideFeedback critiques one answer plan. The feedback is persisted;
// persist failures are logged only.
func (r *Reviewer) ProvideFeedback(ctx context.Context, answerPlanID, planText string) (string, error) {
	feedbackText, err := r.llm.Complete(ctx, fmt.Sprintf(feedbackPrompt, planText))
	if err != nil {
		return "", fmt.Errorf("provide feedback: %w", err)
	}

	saveErr := r.store.SaveFeedback(ctx, models.Feedback{
		ID:           uuid.NewString(),
		AnswerPlanID: answerPlanID,
		FeedbackText: feedbackText,
		CreatedAt:    time.Now(),
		AgentInfo:    r.agent,
	})
	if saveErr != nil {
		r.logger.Error("Error saving feedback", zap.Error(saveErr))
	}
	return feedbackText, nil
}

// GenerateTipSheet distills all per-question findings into the final tip
// list. On total failure a fixed fallback sheet is used; in every case the
// sheet is persisted.
func (r *Reviewer) GenerateTipSheet(ctx context.Context, parentID string, findings []string, parentType string) []string {
	if len(findings) == 0 {
		r.logger.Warn("No findings to synthesize, using fallback tips")
		r.saveTipSheet(ctx, parentID, parentType, fallbackTips)
		return fallbackTips
	}

	response, err := r.llm.Complete(ctx, fmt.Sprintf(tipSheetPrompt, strings.Join(findings, "\n")))
	if err != nil {
		r.logger.Error("Tip sheet generation failed, using fallback tips", zap.Error(err))
		r.saveTipSheet(ctx, parentID, parentType, fallbackTips)
		return fallbackTips
	}

	tips := ParseBullets(response)
	r.saveTipSheet(ctx, parentID, parentType, tips)
	r.logger.Info("Generated tip sheet", zap.Int("tips", len(tips)))
	return tips
}

func (r *Reviewer) saveTipSheet(ctx context.Context, parentID, parentType string, tips []string) {
	err := r.store.SaveTipSheet(ctx, models.TipSheet{
		ID:                uuid.NewString(),
		ParentID:          parentID,
		ParentType:        parentType,
		FinalBulletPoints: tips,
		CreatedAt:         time.Now(),
	})
	if err != nil {
		r.logger.Error("Error saving tip sheet", zap.Error(err))
	}
}
