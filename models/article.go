package models

import "time"

// Article is one scraped news item, persisted by the collector. Immutable
// after creation except for its status.
type Article struct {
	Title       string    `bson:"title" json:"title"`
	Status      string    `bson:"status" json:"status"`
	SourceLinks []string  `bson:"source_links" json:"source_links"`
	NotionLink  *string   `bson:"notion_link" json:"notion_link,omitempty"`
	GeneratedOn time.Time `bson:"generated_on" json:"generated_on"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// GenerationLog is the append-only audit record for one collection batch.
type GenerationLog struct {
	ParentID        string    `bson:"parent_id" json:"parent_id"`
	ParentType      string    `bson:"parent_type" json:"parent_type"`
	SourcesAnalyzed int       `bson:"sources_analyzed" json:"sources_analyzed"`
	SourcesUsed     int       `bson:"sources_used" json:"sources_used"`
	SourceTitles    []string  `bson:"source_titles" json:"source_titles"`
	SourceLinks     []string  `bson:"source_links" json:"source_links"`
	TimeSpent       float64   `bson:"time_spent" json:"time_spent"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
