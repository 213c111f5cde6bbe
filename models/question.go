package models

import "time"

// Allowed parent_type values for questions. Tip sheets accept the same set
// minus "data_collection".
var QuestionParentTypes = []string{"news", "nominations", "insights", "topics", "data_collection"}

var TipSheetParentTypes = []string{"news", "nominations", "insights", "topics"}

// AgentInfo records which agent produced a document.
type AgentInfo struct {
	Name string `bson:"name" json:"name"`
	Type string `bson:"type" json:"type"`
	Role string `bson:"role" json:"role"`
}

// Question is a single generated analytical question. Immutable.
type Question struct {
	ID           string    `bson:"id" json:"id"`
	ParentID     string    `bson:"parent_id" json:"parent_id"`
	ParentType   string    `bson:"parent_type" json:"parent_type"`
	QuestionText string    `bson:"question_text" json:"question_text"`
	TimeSpent    float64   `bson:"time_spent" json:"time_spent"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	AgentInfo    AgentInfo `bson:"agent_info" json:"agent_info"`
}
