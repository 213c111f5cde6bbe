package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"aipress/models"
)

// Stage names of the pipeline, in execution order.
const (
	StageCollecting         = "collecting"
	StageQuestionGeneration = "question_generation"
	StageAnalysisReview     = "analysis_review"
	StageSynthesis          = "synthesis"
	StageLocalization       = "localization"
	StageFinalGeneration    = "final_generation"
	StageQualityScoring     = "quality_scoring"
	StageCompleted          = "completed"
	StageFailed             = "failed"
)

// Workflow runs the full pipeline for one topic. Each stage runs under its
// own deadline; questions inside the analysis stage are processed in
// parallel, bounded by workers, and one question failing never affects its
// siblings.
type Workflow struct {
	store     Store
	collector *Collector
	questions *QuestionGenerator
	analyst   *Analyst
	reviewer  *Reviewer
	localizer *Localizer
	generator *ArticleGenerator
	scorer    *QualityScorer

	stageTimeout time.Duration
	workers      int
	logger       *zap.Logger
}

func NewWorkflow(
	store Store,
	collector *Collector,
	questions *QuestionGenerator,
	analyst *Analyst,
	reviewer *Reviewer,
	localizer *Localizer,
	generator *ArticleGenerator,
	scorer *QualityScorer,
	stageTimeout time.Duration,
	workers int,
	logger *zap.Logger,
) *Workflow {
	if stageTimeout <= 0 {
		stageTimeout = 5 * time.Minute
	}
	if workers <= 0 {
		workers = 1
	}
	return &Workflow{
		store:        store,
		collector:    collector,
		questions:    questions,
		analyst:      analyst,
		reviewer:     reviewer,
		localizer:    localizer,
		generator:    generator,
		scorer:       scorer,
		stageTimeout: stageTimeout,
		workers:      workers,
		logger:       logger,
	}
}

// Run executes every stage for the topic and returns the collection id of
// the run. The id is valid even when an error is returned, so partial
// results stay traceable.
func (w *Workflow) Run(ctx context.Context, topic string) (string, error) {
	w.logger.Info("Starting analysis workflow", zap.String("topic", topic))

	stageCtx, cancel := context.WithTimeout(ctx, w.stageTimeout)
	collectionID, data := w.collector.Collect(stageCtx, topic)
	cancel()
	if collectionID == "" {
		return "", fmt.Errorf("stage %s: no collection id", StageCollecting)
	}
	w.logStage(StageCollecting, collectionID, zap.Int("articles", len(data.Articles)))

	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	questions := w.questions.Generate(stageCtx, collectionID, data)
	cancel()
	w.logStage(StageQuestionGeneration, collectionID, zap.Int("questions", len(questions)))

	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	findings := w.analyzeQuestions(stageCtx, questions)
	cancel()
	w.logStage(StageAnalysisReview, collectionID, zap.Int("finding_blocks", len(findings)))

	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	tips := w.reviewer.GenerateTipSheet(stageCtx, collectionID, findings, "insights")
	cancel()
	w.logStage(StageSynthesis, collectionID, zap.Int("tips", len(tips)))

	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	frenchTips, err := w.localizer.Localize(stageCtx, collectionID, tips)
	cancel()
	if err != nil {
		return collectionID, fmt.Errorf("stage %s: %w", StageLocalization, err)
	}
	w.logStage(StageLocalization, collectionID)

	style := AnalyzeStyle(frenchTips)
	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	articleID, content, err := w.generator.Generate(stageCtx, collectionID, topic, frenchTips, style)
	cancel()
	if err != nil {
		return collectionID, fmt.Errorf("stage %s: %w", StageFinalGeneration, err)
	}
	w.logStage(StageFinalGeneration, collectionID, zap.String("article_id", articleID))

	stageCtx, cancel = context.WithTimeout(ctx, w.stageTimeout)
	w.scorer.Score(stageCtx, articleID, content)
	cancel()
	w.logStage(StageQualityScoring, collectionID)

	w.logStage(StageCompleted, collectionID)
	return collectionID, nil
}

// analyzeQuestions runs the plan/feedback/revision/analysis cycle per
// question, in parallel, and merges the findings in question order. A failed
// question contributes nothing.
func (w *Workflow) analyzeQuestions(ctx context.Context, questions []models.Question) []string {
	blocks := make([][]string, len(questions))

	var wg sync.WaitGroup
	sem := make(chan struct{}, w.workers)
	for i, q := range questions {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, q models.Question) {
			defer wg.Done()
			defer func() { <-sem }()
			blocks[i] = w.analyzeOne(ctx, i+1, q)
		}(i, q)
	}
	wg.Wait()

	var findings []string
	for _, block := range blocks {
		findings = append(findings, block...)
	}
	return findings
}

func (w *Workflow) analyzeOne(ctx context.Context, number int, q models.Question) []string {
	logger := w.logger.With(zap.Int("question", number), zap.String("question_id", q.ID))

	planID, planText, err := w.analyst.CreateAnswerPlan(ctx, q.ID, q.QuestionText)
	if err != nil {
		logger.Error("Question failed at planning",
			zap.String("question_text", q.QuestionText), zap.Error(err))
		return nil
	}

	feedback, err := w.reviewer.ProvideFeedback(ctx, planID, planText)
	if err != nil {
		logger.Error("Question failed at review",
			zap.String("question_text", q.QuestionText), zap.Error(err))
		return nil
	}

	_, revisedText, err := w.analyst.ReviseAnswerPlan(ctx, q.ID, q.QuestionText, feedback)
	if err != nil {
		logger.Error("Question failed at revision",
			zap.String("question_text", q.QuestionText), zap.Error(err))
		return nil
	}

	points := w.analyst.ExecuteAnalysis(ctx, q.ID, q.QuestionText, revisedText)
	logger.Debug("Question analysis completed", zap.Int("findings", len(points)))

	block := make([]string, 0, len(points)+2)
	block = append(block, fmt.Sprintf("Question %d: %s", number, q.QuestionText), "Findings:")
	return append(block, points...)
}

// ProcessTopic runs the workflow for a persisted topic and records the
// outcome on its status record. After a successful run the record is re-read
// to confirm it actually reached completed. Any top-level error, including
// one from the completion write or its verification, marks the topic failed
// before it is returned, so the record never stays in processing.
func (w *Workflow) ProcessTopic(ctx context.Context, topicID, topic string) error {
	if err := w.store.UpdateTopicStatus(ctx, topicID, models.TopicProcessing); err != nil {
		return fmt.Errorf("mark topic processing: %w", err)
	}

	collectionID, err := w.Run(ctx, topic)
	if err == nil {
		err = w.completeTopic(ctx, topicID, collectionID)
	}
	if err != nil {
		w.logger.Error("Workflow failed", zap.String("topic_id", topicID), zap.Error(err))
		w.logStage(StageFailed, collectionID, zap.String("topic_id", topicID))
		if ferr := w.store.FailTopic(ctx, topicID, err.Error()); ferr != nil {
			w.logger.Error("Failed to mark topic failed", zap.Error(ferr))
		}
		return err
	}

	w.logger.Info("Topic completed",
		zap.String("topic_id", topicID),
		zap.String("collection_id", collectionID))
	return nil
}

// completeTopic writes the terminal completed state and confirms it stuck.
func (w *Workflow) completeTopic(ctx context.Context, topicID, collectionID string) error {
	result := fmt.Sprintf("Analysis completed successfully. Collection ID: %s", collectionID)
	if err := w.store.CompleteTopic(ctx, topicID, collectionID, result); err != nil {
		return fmt.Errorf("complete topic: %w", err)
	}

	updated, err := w.store.TopicByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("verify topic: %w", err)
	}
	if updated == nil || updated.Status != models.TopicCompleted {
		return fmt.Errorf("topic %s did not reach completed status", topicID)
	}
	return nil
}

func (w *Workflow) logStage(stage, collectionID string, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("stage", stage),
		zap.String("collection_id", collectionID),
	}, fields...)
	w.logger.Info("Workflow stage finished", fields...)
}
