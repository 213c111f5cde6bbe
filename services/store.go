// Package services implements the content-generation pipeline: collection,
// question generation, analysis and review, synthesis, localization, final
// article generation and quality scoring.
package services

import (
	"context"

	"aipress/models"
)

// Store is the persistence surface the pipeline needs. *storage.Mongo
// implements it; tests swap in fakes.
type Store interface {
	SaveArticle(ctx context.Context, a models.Article) error
	SaveGenerationLog(ctx context.Context, l models.GenerationLog) error
	SaveQuestion(ctx context.Context, q models.Question) error
	SaveAnswerPlan(ctx context.Context, p models.AnswerPlan) error
	SaveFeedback(ctx context.Context, f models.Feedback) error
	SaveFinalResult(ctx context.Context, r models.FinalResult) error
	SaveTipSheet(ctx context.Context, t models.TipSheet) error
	SaveLocalizedTip(ctx context.Context, t models.LocalizedTip) error
	SaveFinalArticle(ctx context.Context, a models.FinalArticle) (string, error)
	SaveQualityMetrics(ctx context.Context, m models.QualityMetrics) error

	SourceLinks(ctx context.Context) ([]string, error)

	PendingTopics(ctx context.Context) ([]models.Topic, error)
	TopicByID(ctx context.Context, id string) (*models.Topic, error)
	UpdateTopicStatus(ctx context.Context, id, status string) error
	CompleteTopic(ctx context.Context, id, collectionID, result string) error
	FailTopic(ctx context.Context, id, message string) error
}
