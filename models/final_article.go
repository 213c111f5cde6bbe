package models

import "time"

// ArticleTitle carries both the original and the localized title of the
// generated article.
type ArticleTitle struct {
	Original  string `bson:"original" json:"original"`
	Localized string `bson:"french" json:"french"`
}

// ArticleMetadata is derived from the generated content at save time.
type ArticleMetadata struct {
	HasHeadings  bool `bson:"has_headings" json:"has_headings"`
	HeadingCount int  `bson:"heading_count" json:"heading_count"`
}

// FinalArticle is the terminal artifact of a run.
type FinalArticle struct {
	CollectionID  string          `bson:"collection_id" json:"collection_id"`
	Title         ArticleTitle    `bson:"title" json:"title"`
	Content       string          `bson:"content" json:"content"`
	Headings      []string        `bson:"headings" json:"headings"`
	PublishedDate time.Time       `bson:"published_date" json:"published_date"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
	Status        string          `bson:"status" json:"status"`
	Metadata      ArticleMetadata `bson:"metadata" json:"metadata"`
}

// QualityMetrics scores a final article. One per article; failures while
// computing or saving these never fail the run.
type QualityMetrics struct {
	ParentID           string    `bson:"parent_id" json:"parent_id"`
	ParentType         string    `bson:"parent_type" json:"parent_type"`
	HumanWritingScore  float64   `bson:"human_writing_score" json:"human_writing_score"`
	PlagiarismScore    float64   `bson:"plagiarism_score" json:"plagiarism_score"`
	FactVerification   bool      `bson:"fact_verification" json:"fact_verification"`
	FactAnalysis       string    `bson:"fact_analysis,omitempty" json:"fact_analysis,omitempty"`
	TrustedSourceScore float64   `bson:"trusted_source_score" json:"trusted_source_score"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}
