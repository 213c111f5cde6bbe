package models

import "time"

// TipSheet aggregates all per-question findings of a run into the final set
// of recommendations. One per run.
type TipSheet struct {
	ID                string    `bson:"id" json:"id"`
	ParentID          string    `bson:"parent_id" json:"parent_id"`
	ParentType        string    `bson:"parent_type" json:"parent_type"`
	FinalBulletPoints []string  `bson:"final_bullet_points" json:"final_bullet_points"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

// LocalizedTip is the French translation of a run's tip sheet.
type LocalizedTip struct {
	ParentID      string    `bson:"parent_id" json:"parent_id"`
	LocalizedText string    `bson:"french_tips" json:"french_tips"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
