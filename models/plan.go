package models

import "time"

// AnswerPlan is one version of an analysis plan for a question. Versions are
// append-only: a revision is a new record with version=2, never an update of
// the version=1 document.
type AnswerPlan struct {
	ID         string    `bson:"id" json:"id"`
	QuestionID string    `bson:"question_id" json:"question_id"`
	Version    int       `bson:"version" json:"version"`
	PlanText   string    `bson:"plan_text" json:"plan_text"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	AgentInfo  AgentInfo `bson:"agent_info" json:"agent_info"`
}

// Feedback is the editorial critique of one answer plan.
type Feedback struct {
	ID           string    `bson:"id" json:"id"`
	AnswerPlanID string    `bson:"answer_plan_id" json:"answer_plan_id"`
	FeedbackText string    `bson:"feedback_text" json:"feedback_text"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	AgentInfo    AgentInfo `bson:"agent_info" json:"agent_info"`
}

// FinalResult holds the findings produced by executing the revised plan.
type FinalResult struct {
	ID           string    `bson:"id" json:"id"`
	QuestionID   string    `bson:"question_id" json:"question_id"`
	BulletPoints []string  `bson:"bullet_points" json:"bullet_points"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	AgentInfo    AgentInfo `bson:"agent_info" json:"agent_info"`
}
