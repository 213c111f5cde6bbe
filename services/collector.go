package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"aipress/models"
	"aipress/providers"
)

var articlesCollectedCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "articles_collected_total",
		Help: "Total number of articles collected and saved.",
	},
)

func init() {
	prometheus.MustRegister(articlesCollectedCounter)
}

// CollectedData is the payload handed from collection to question
// generation.
type CollectedData struct {
	Articles []providers.Article `json:"articles"`
	Message  string              `json:"message"`
}

// Collector gathers articles from the configured sources and persists the
// batch. It never fails the run: every error path degrades into an empty
// payload with the error recorded in Message.
type Collector struct {
	store     Store
	feed      providers.Source
	topicFeed providers.Source
	logger    *zap.Logger
}

func NewCollector(store Store, feed, topicFeed providers.Source, logger *zap.Logger) *Collector {
	return &Collector{store: store, feed: feed, topicFeed: topicFeed, logger: logger}
}

// Collect fetches articles for the topic (or the general feed when topic is
// empty), saves each well-formed article and one generation log, and returns
// a fresh collection id with the payload. When called without a topic it
// adopts the oldest pending topic for status tracking.
func (c *Collector) Collect(ctx context.Context, topic string) (string, CollectedData) {
	start := time.Now()
	topicID := ""

	if topic == "" {
		if pending, err := c.store.PendingTopics(ctx); err == nil && len(pending) > 0 {
			topic = pending[0].Topic
			topicID = pending[0].ID
			c.logger.Info("Processing pending topic", zap.String("topic", topic))
		}
	}

	var (
		articles []providers.Article
		err      error
	)
	if topic != "" {
		articles, err = c.topicFeed.Fetch(ctx, topic)
	} else {
		articles, err = c.feed.Fetch(ctx, "")
	}
	if err != nil {
		c.logger.Error("Data collection failed", zap.Error(err))
		if topicID != "" {
			if ferr := c.store.FailTopic(ctx, topicID, err.Error()); ferr != nil {
				c.logger.Error("Failed to mark topic failed", zap.Error(ferr))
			}
		}
		return uuid.NewString(), CollectedData{
			Articles: []providers.Article{},
			Message:  fmt.Sprintf("Error collecting data: %v", err),
		}
	}

	collectionID := uuid.NewString()

	saved := make([]providers.Article, 0, len(articles))
	now := time.Now()
	for _, article := range articles {
		if article.Headline == "" || article.URL == "" || article.Source == "" {
			c.logger.Warn("Skipping malformed article", zap.String("url", article.URL))
			continue
		}
		err := c.store.SaveArticle(ctx, models.Article{
			Title:       article.Headline,
			Status:      "collected",
			SourceLinks: []string{article.URL},
			GeneratedOn: now,
			UpdatedAt:   now,
		})
		if err != nil {
			c.logger.Error("Error saving article",
				zap.String("source", article.Source), zap.Error(err))
			continue
		}
		saved = append(saved, article)
	}

	articlesCollectedCounter.Add(float64(len(saved)))

	titles := make([]string, len(saved))
	links := make([]string, len(saved))
	sources := make(map[string]struct{}, len(saved))
	for i, article := range saved {
		titles[i] = fmt.Sprintf("[%s] %s", article.Source, article.Headline)
		links[i] = article.URL
		sources[article.Source] = struct{}{}
	}

	logErr := c.store.SaveGenerationLog(ctx, models.GenerationLog{
		ParentID:        collectionID,
		ParentType:      "news",
		SourcesAnalyzed: len(saved),
		SourcesUsed:     len(saved),
		SourceTitles:    titles,
		SourceLinks:     links,
		TimeSpent:       time.Since(start).Seconds(),
		CreatedAt:       time.Now(),
	})
	if logErr != nil {
		// The batch itself survives, but the adopted topic cannot be
		// trusted anymore.
		c.logger.Error("Error saving generation log", zap.Error(logErr))
		if topicID != "" {
			if ferr := c.store.FailTopic(ctx, topicID, logErr.Error()); ferr != nil {
				c.logger.Error("Failed to mark topic failed", zap.Error(ferr))
			}
		}
	}

	subject := topic
	if subject == "" {
		subject = "various topics"
	}
	c.logger.Info("Data collection completed",
		zap.String("collection_id", collectionID),
		zap.Int("articles", len(saved)))

	return collectionID, CollectedData{
		Articles: saved,
		Message: fmt.Sprintf("Collected %d articles about %s from %d sources",
			len(saved), subject, len(sources)),
	}
}
