package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

const planPrompt = `Create a detailed analysis plan to answer the following question:
%s

The plan should:
1. Outline specific data sources to analyze
2. Define key metrics and indicators to examine
3. Specify analytical approaches and methodologies
4. Consider potential challenges and limitations`

const revisionPrompt = planPrompt + `

An editor reviewed the previous version of the plan and gave this feedback:
%s

Address every point of the feedback in the revised plan.`

const executePrompt = `Based on the following analysis plan:
%s

Provide a detailed answer to the question:
%s

Format your response as a list of key findings and insights.
Each point should:
- Start with a bullet point (-)
- Be supported by data and evidence where possible
- Be clear and actionable
- Provide specific insights or recommendations

Make sure each point is on a new line and starts with a dash (-).`

// errorFindings stand in for findings when the analysis call itself fails.
var errorFindings = []string{
	"Analysis could not be completed due to an error",
	"Please review the analysis plan and try again",
}

// Analyst drafts, revises and executes per-question analysis plans.
type Analyst struct {
	store  Store
	llm    llm.Client
	agent  models.AgentInfo
	logger *zap.Logger
}

func NewAnalyst(store Store, client llm.Client, model string, logger *zap.Logger) *Analyst {
	return &Analyst{
		store:  store,
		llm:    client,
		agent:  models.AgentInfo{Name: "Analysis Agent", Type: model, Role: "Analysis"},
		logger: logger,
	}
}

// CreateAnswerPlan drafts the initial (version 1) plan for a question.
func (a *Analyst) CreateAnswerPlan(ctx context.Context, questionID, question string) (string, string, error) {
	return a.plan(ctx, questionID, 1, fmt.Sprintf(planPrompt, question))
}

// ReviseAnswerPlan drafts the version 2 plan with the editorial feedback
// threaded into the prompt.
func (a *Analyst) ReviseAnswerPlan(ctx context.Context, questionID, question, feedback string) (string, string, error) {
	return a.plan(ctx, questionID, 2, fmt.Sprintf(revisionPrompt, question, feedback))
}

func (a *Analyst) plan(ctx context.Context, questionID string, version int, prompt string) (string, string, error) {
	planText, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("create answer plan v%d: %w", version, err)
	}

	planID := uuid.NewString()
	saveErr := a.store.SaveAnswerPlan(ctx, models.AnswerPlan{
		ID:         planID,
		QuestionID: questionID,
		Version:    version,
		PlanText:   planText,
		CreatedAt:  time.Now(),
		AgentInfo:  a.agent,
	})
	if saveErr != nil {
		a.logger.Error("Error saving answer plan", zap.Int("version", version), zap.Error(saveErr))
	}
	return planID, planText, nil
}

// ExecuteAnalysis runs the approved plan and returns the findings as bullet
// points. A model failure yields fixed error findings; either way the result
// is persisted (persist failures logged only).
func (a *Analyst) ExecuteAnalysis(ctx context.Context, questionID, question, planText string) []string {
	response, err := a.llm.Complete(ctx, fmt.Sprintf(executePrompt, planText, question))
	if err != nil {
		a.logger.Error("Analysis execution failed", zap.String("question_id", questionID), zap.Error(err))
		a.saveResult(ctx, questionID, errorFindings)
		return errorFindings
	}

	points := ParseBullets(response)
	a.saveResult(ctx, questionID, points)
	return points
}

func (a *Analyst) saveResult(ctx context.Context, questionID string, points []string) {
	err := a.store.SaveFinalResult(ctx, models.FinalResult{
		ID:           uuid.NewString(),
		QuestionID:   questionID,
		BulletPoints: points,
		CreatedAt:    time.Now(),
		AgentInfo:    a.agent,
	})
	if err != nil {
		a.logger.Error("Error saving final result", zap.String("question_id", questionID), zap.Error(err))
	}
}
