package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"aipress/models"
)

// Collection names. One named collection per entity of the data model.
const (
	colArticles       = "news"
	colGenerationLogs = "generation_logs"
	colQuestions      = "questions"
	colAnswerPlans    = "answer_plans"
	colFeedback       = "feedback"
	colFinalResults   = "final_results"
	colTipSheets      = "tip_sheets"
	colLocalizedTips  = "french_tips"
	colFinalArticles  = "french_blogs"
	colQualityMetrics = "quality_metrics"
	colTopics         = "search_topics"
)

const opTimeout = 10 * time.Second

// Mongo is the typed document store. Each persistence operation of the
// workflow has exactly one method here; there is no runtime dispatch by
// operation name, and no transaction spans more than one call.
type Mongo struct {
	db     *mongo.Database
	client *mongo.Client
	logger *zap.Logger
}

// NewMongo connects to MongoDB and pings it before returning a store.
func NewMongo(ctx context.Context, uri, database string, logger *zap.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{db: client.Database(database), client: client, logger: logger}, nil
}

// Close disconnects the underlying client.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Mongo) insert(ctx context.Context, collection string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func (s *Mongo) SaveArticle(ctx context.Context, a models.Article) error {
	return s.insert(ctx, colArticles, a)
}

func (s *Mongo) SaveGenerationLog(ctx context.Context, l models.GenerationLog) error {
	return s.insert(ctx, colGenerationLogs, l)
}

func (s *Mongo) SaveQuestion(ctx context.Context, q models.Question) error {
	if err := validParentType(q.ParentType, models.QuestionParentTypes); err != nil {
		return err
	}
	return s.insert(ctx, colQuestions, q)
}

func (s *Mongo) SaveAnswerPlan(ctx context.Context, p models.AnswerPlan) error {
	return s.insert(ctx, colAnswerPlans, p)
}

func (s *Mongo) SaveFeedback(ctx context.Context, f models.Feedback) error {
	return s.insert(ctx, colFeedback, f)
}

func (s *Mongo) SaveFinalResult(ctx context.Context, r models.FinalResult) error {
	return s.insert(ctx, colFinalResults, r)
}

func (s *Mongo) SaveTipSheet(ctx context.Context, t models.TipSheet) error {
	if err := validParentType(t.ParentType, models.TipSheetParentTypes); err != nil {
		return err
	}
	return s.insert(ctx, colTipSheets, t)
}

func (s *Mongo) SaveLocalizedTip(ctx context.Context, t models.LocalizedTip) error {
	return s.insert(ctx, colLocalizedTips, t)
}

// SaveFinalArticle persists the terminal artifact of a run and returns the
// generated document id.
func (s *Mongo) SaveFinalArticle(ctx context.Context, a models.FinalArticle) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	res, err := s.db.Collection(colFinalArticles).InsertOne(ctx, a)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", colFinalArticles, err)
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (s *Mongo) SaveQualityMetrics(ctx context.Context, m models.QualityMetrics) error {
	return s.insert(ctx, colQualityMetrics, m)
}

// FinalArticles returns up to limit final articles, newest first. Used by
// the export job.
func (s *Mongo) FinalArticles(ctx context.Context, limit int64) ([]models.FinalArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := s.db.Collection(colFinalArticles).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find final articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []models.FinalArticle
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode final articles: %w", err)
	}
	return articles, nil
}

// SourceLinks returns every source link recorded in the generation logs.
// The quality scorer matches these against the trusted-domain list.
func (s *Mongo) SourceLinks(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.db.Collection(colGenerationLogs).Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"source_links": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("find generation logs: %w", err)
	}
	defer cursor.Close(ctx)

	var links []string
	for cursor.Next(ctx) {
		var log models.GenerationLog
		if err := cursor.Decode(&log); err != nil {
			continue
		}
		links = append(links, log.SourceLinks...)
	}
	return links, cursor.Err()
}

// CreateTopic persists a new pending topic and returns it.
func (s *Mongo) CreateTopic(ctx context.Context, id, topic string) (*models.Topic, error) {
	now := time.Now()
	t := models.Topic{
		ID:        id,
		Topic:     topic,
		Status:    models.TopicPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.insert(ctx, colTopics, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TopicByID looks up a single topic record.
func (s *Mongo) TopicByID(ctx context.Context, id string) (*models.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var t models.Topic
	err := s.db.Collection(colTopics).FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find topic %s: %w", id, err)
	}
	return &t, nil
}

// PendingTopics returns all topics still waiting for a run.
func (s *Mongo) PendingTopics(ctx context.Context) ([]models.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.db.Collection(colTopics).Find(ctx, bson.M{"status": models.TopicPending})
	if err != nil {
		return nil, fmt.Errorf("find pending topics: %w", err)
	}
	defer cursor.Close(ctx)

	var topics []models.Topic
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, fmt.Errorf("decode pending topics: %w", err)
	}
	return topics, nil
}

// UpdateTopicStatus sets a topic's status and bumps updated_at.
func (s *Mongo) UpdateTopicStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection(colTopics).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("update topic %s status: %w", id, err)
	}
	return nil
}

// CompleteTopic records a successful run on the topic.
func (s *Mongo) CompleteTopic(ctx context.Context, id, collectionID, result string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	_, err := s.db.Collection(colTopics).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"status":        models.TopicCompleted,
			"collection_id": collectionID,
			"result":        result,
			"completed_at":  now,
			"updated_at":    now,
		}})
	if err != nil {
		return fmt.Errorf("complete topic %s: %w", id, err)
	}
	return nil
}

// FailTopic records a failed run on the topic.
func (s *Mongo) FailTopic(ctx context.Context, id, message string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	_, err := s.db.Collection(colTopics).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"status":       models.TopicFailed,
			"error":        message,
			"completed_at": now,
			"updated_at":   now,
		}})
	if err != nil {
		return fmt.Errorf("fail topic %s: %w", id, err)
	}
	return nil
}

func validParentType(parentType string, allowed []string) error {
	for _, a := range allowed {
		if parentType == a {
			return nil
		}
	}
	return fmt.Errorf("invalid parent_type %q", parentType)
}
