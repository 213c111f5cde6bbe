package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"aipress/config"
	"aipress/llm"
	"aipress/models"
	"aipress/providers/newsfeed"
	"aipress/providers/topicsearch"
	"aipress/services"
	"aipress/storage"
)

var (
	runsStartedCounter   prometheus.Counter
	runsCompletedCounter prometheus.Counter
	runsFailedCounter    prometheus.Counter
)

func init() {
	runsStartedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_runs_started_total",
			Help: "Total number of analysis workflow runs started.",
		},
	)
	runsCompletedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_runs_completed_total",
			Help: "Total number of analysis workflow runs completed successfully.",
		},
	)
	runsFailedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_runs_failed_total",
			Help: "Total number of analysis workflow runs that failed.",
		},
	)
	prometheus.MustRegister(runsStartedCounter, runsCompletedCounter, runsFailedCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	store, err := storage.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase, logging)
	if err != nil {
		logging.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer store.Close(context.Background())
	logging.Info("Successfully connected to MongoDB.")

	// Setup Services
	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	feed := newsfeed.NewFetcher(logging)
	topicFeed := topicsearch.NewFetcher(logging, cfg.SearchResults)

	workflow := services.NewWorkflow(
		store,
		services.NewCollector(store, feed, topicFeed, logging),
		services.NewQuestionGenerator(store, client, cfg.OpenAIModel, cfg.QuestionTarget, logging),
		services.NewAnalyst(store, client, cfg.OpenAIModel, logging),
		services.NewReviewer(store, client, cfg.OpenAIModel, logging),
		services.NewLocalizer(store, client, logging),
		services.NewArticleGenerator(store, client, logging),
		services.NewQualityScorer(store, client, cfg.TrustedDomainList(), logging),
		cfg.StageTimeout,
		cfg.QuestionWorkers,
		logging,
	)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupTopicRoutes(router, store, workflow, logging)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled topic drain...")
		drainPendingTopics(context.Background(), store, workflow, logging)
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupTopicRoutes(router *gin.Engine, store *storage.Mongo, workflow *services.Workflow, log *zap.Logger) {
	rg := router.Group("/topics")

	rg.POST("/search", func(c *gin.Context) {
		type SearchRequest struct {
			Topic string `json:"topic" binding:"required"`
		}

		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		topic, err := store.CreateTopic(c.Request.Context(), uuid.NewString(), req.Topic)
		if err != nil {
			log.Error("Failed to create topic", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		go runTopic(store, workflow, topic.ID, topic.Topic, log)

		c.JSON(http.StatusOK, gin.H{
			"topic_id": topic.ID,
			"status":   topic.Status,
			"message":  "Topic submitted for analysis",
		})
	})

	rg.GET("/pending", func(c *gin.Context) {
		topics, err := store.PendingTopics(c.Request.Context())
		if err != nil {
			log.Error("Failed to list pending topics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if topics == nil {
			topics = []models.Topic{}
		}
		c.JSON(http.StatusOK, topics)
	})

	rg.GET("/:id/status", func(c *gin.Context) {
		topic, err := store.TopicByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Error("Failed to load topic", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if topic == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
			return
		}

		payload := gin.H{
			"topic_id": topic.ID,
			"topic":    topic.Topic,
			"status":   topic.Status,
		}
		switch topic.Status {
		case models.TopicCompleted:
			payload["collection_id"] = topic.CollectionID
			payload["result"] = topic.Result
		case models.TopicFailed:
			payload["error"] = topic.Error
		}
		c.JSON(http.StatusOK, payload)
	})
}

func runTopic(store *storage.Mongo, workflow *services.Workflow, topicID, topic string, log *zap.Logger) {
	runsStartedCounter.Inc()
	if err := workflow.ProcessTopic(context.Background(), topicID, topic); err != nil {
		runsFailedCounter.Inc()
		log.Error("Topic run failed", zap.String("topic_id", topicID), zap.Error(err))
		return
	}
	runsCompletedCounter.Inc()
}

// drainPendingTopics runs every pending topic once, sequentially.
func drainPendingTopics(ctx context.Context, store *storage.Mongo, workflow *services.Workflow, log *zap.Logger) {
	topics, err := store.PendingTopics(ctx)
	if err != nil {
		log.Error("Failed to load pending topics for drain", zap.Error(err))
		return
	}
	log.Info("Draining pending topics", zap.Int("count", len(topics)))

	for _, topic := range topics {
		runsStartedCounter.Inc()
		if err := workflow.ProcessTopic(ctx, topic.ID, topic.Topic); err != nil {
			runsFailedCounter.Inc()
			log.Error("Scheduled topic run failed", zap.String("topic_id", topic.ID), zap.Error(err))
			continue
		}
		runsCompletedCounter.Inc()
	}
}
