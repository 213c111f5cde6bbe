package services

import (
	"context"
	"time"

	"aipress/models"
	"aipress/providers"
)

// fakeStore records everything the pipeline persists. Individual operations
// can be made to fail via the *Err fields.
type fakeStore struct {
	articles      []models.Article
	logs          []models.GenerationLog
	questions     []models.Question
	plans         []models.AnswerPlan
	feedback      []models.Feedback
	results       []models.FinalResult
	tipSheets     []models.TipSheet
	localized     []models.LocalizedTip
	finalArticles []models.FinalArticle
	metrics       []models.QualityMetrics

	sourceLinks []string
	topics      map[string]*models.Topic
	statusLog   []string

	articleErr  error
	logErr      error
	questionErr error
	tipSheetErr error

	completeErr  error
	completeLost bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{topics: map[string]*models.Topic{}}
}

func (f *fakeStore) addTopic(id, topic string) {
	f.topics[id] = &models.Topic{
		ID:        id,
		Topic:     topic,
		Status:    models.TopicPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.statusLog = append(f.statusLog, models.TopicPending)
}

func (f *fakeStore) SaveArticle(ctx context.Context, a models.Article) error {
	if f.articleErr != nil {
		return f.articleErr
	}
	f.articles = append(f.articles, a)
	return nil
}

func (f *fakeStore) SaveGenerationLog(ctx context.Context, l models.GenerationLog) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeStore) SaveQuestion(ctx context.Context, q models.Question) error {
	if f.questionErr != nil {
		return f.questionErr
	}
	f.questions = append(f.questions, q)
	return nil
}

func (f *fakeStore) SaveAnswerPlan(ctx context.Context, p models.AnswerPlan) error {
	f.plans = append(f.plans, p)
	return nil
}

func (f *fakeStore) SaveFeedback(ctx context.Context, fb models.Feedback) error {
	f.feedback = append(f.feedback, fb)
	return nil
}

func (f *fakeStore) SaveFinalResult(ctx context.Context, r models.FinalResult) error {
	f.results = append(f.results, r)
	return nil
}

func (f *fakeStore) SaveTipSheet(ctx context.Context, t models.TipSheet) error {
	if f.tipSheetErr != nil {
		return f.tipSheetErr
	}
	f.tipSheets = append(f.tipSheets, t)
	return nil
}

func (f *fakeStore) SaveLocalizedTip(ctx context.Context, t models.LocalizedTip) error {
	f.localized = append(f.localized, t)
	return nil
}

func (f *fakeStore) SaveFinalArticle(ctx context.Context, a models.FinalArticle) (string, error) {
	f.finalArticles = append(f.finalArticles, a)
	return "article-1", nil
}

func (f *fakeStore) SaveQualityMetrics(ctx context.Context, m models.QualityMetrics) error {
	f.metrics = append(f.metrics, m)
	return nil
}

func (f *fakeStore) SourceLinks(ctx context.Context) ([]string, error) {
	return f.sourceLinks, nil
}

func (f *fakeStore) PendingTopics(ctx context.Context) ([]models.Topic, error) {
	var pending []models.Topic
	for _, t := range f.topics {
		if t.Status == models.TopicPending {
			pending = append(pending, *t)
		}
	}
	return pending, nil
}

func (f *fakeStore) TopicByID(ctx context.Context, id string) (*models.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) UpdateTopicStatus(ctx context.Context, id, status string) error {
	if t, ok := f.topics[id]; ok {
		t.Status = status
	}
	f.statusLog = append(f.statusLog, status)
	return nil
}

func (f *fakeStore) CompleteTopic(ctx context.Context, id, collectionID, result string) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	if f.completeLost {
		// Write acknowledged but the status never changes.
		return nil
	}
	if t, ok := f.topics[id]; ok {
		t.Status = models.TopicCompleted
		t.CollectionID = collectionID
		t.Result = result
	}
	f.statusLog = append(f.statusLog, models.TopicCompleted)
	return nil
}

func (f *fakeStore) FailTopic(ctx context.Context, id, message string) error {
	if t, ok := f.topics[id]; ok {
		t.Status = models.TopicFailed
		t.Error = message
	}
	f.statusLog = append(f.statusLog, models.TopicFailed)
	return nil
}

// fakeLLM dispatches on the prompt via fn.
type fakeLLM struct {
	fn func(prompt string) (string, error)
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.fn(prompt)
}

// fakeSource returns canned articles.
type fakeSource struct {
	articles []providers.Article
	err      error
}

func (f *fakeSource) Fetch(ctx context.Context, topic string) ([]providers.Article, error) {
	return f.articles, f.err
}

func (f *fakeSource) Name() string { return "fake" }
