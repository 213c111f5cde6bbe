package models

import "time"

// Topic status lifecycle. A topic is created as pending, picked up exactly
// once, and ends in completed or failed. Terminal states are never left again.
const (
	TopicPending    = "pending"
	TopicProcessing = "processing"
	TopicCompleted  = "completed"
	TopicFailed     = "failed"
)

// Topic is the persisted tracking record for a submitted analysis run. The
// run itself is identified by a separate collection_id; the two identifier
// spaces are independent.
type Topic struct {
	ID           string     `bson:"id" json:"id"`
	Topic        string     `bson:"topic" json:"topic"`
	Status       string     `bson:"status" json:"status"`
	CollectionID string     `bson:"collection_id,omitempty" json:"collection_id,omitempty"`
	Result       string     `bson:"result,omitempty" json:"result,omitempty"`
	Error        string     `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
