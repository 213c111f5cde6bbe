package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

// questionMarkers decide whether a response line looks like a question.
var questionMarkers = []string{"?", "how", "what", "why", "when", "where", "which"}

// fallbackQuestions keep the workflow alive when the model call fails
// completely.
var fallbackQuestions = []string{
	"How might current market events across Africa impact the adoption of digital financial services?",
	"What opportunities for digital innovation emerge from recent developments in different African regions?",
	"How should financial institutions adapt their services to address emerging challenges across Africa?",
}

const questionPrompt = `Analyze the following news articles from various African sources and generate %d insightful questions about their potential implications for digital banking, financial services, and economic trends.

News Context:
%s

Consider these aspects when generating questions:
1. Economic Impact: how these events influence financial markets, banking services and different African regions.
2. Digital Transformation: what opportunities for digital innovation and adoption emerge.
3. Risk and Adaptation: new challenges for financial institutions and regulatory implications.
4. Social and Market Changes: changing consumer needs and financial behavior.

Generate questions that:
- Connect current events to financial sector implications
- Explore potential ripple effects on digital services
- Consider both challenges and opportunities
- Think about long-term impacts and transformations
- Account for regional differences and local contexts`

// QuestionGenerator turns a collection batch into analytical questions.
type QuestionGenerator struct {
	store  Store
	llm    llm.Client
	agent  models.AgentInfo
	target int
	logger *zap.Logger
}

func NewQuestionGenerator(store Store, client llm.Client, model string, target int, logger *zap.Logger) *QuestionGenerator {
	if target <= 0 {
		target = 2
	}
	return &QuestionGenerator{
		store:  store,
		llm:    client,
		agent:  models.AgentInfo{Name: "Collection Agent", Type: model, Role: "Question Generation"},
		target: target,
		logger: logger,
	}
}

// Generate asks the model for questions about the collected articles,
// normalizes and persists each one, and returns the persisted questions. On
// total model failure it falls back to a fixed question list so the workflow
// can continue.
func (g *QuestionGenerator) Generate(ctx context.Context, collectionID string, data CollectedData) []models.Question {
	start := time.Now()

	response, err := g.llm.Complete(ctx, fmt.Sprintf(questionPrompt, g.target, buildContext(data)))
	if err != nil {
		g.logger.Error("Question generation failed, using fallback questions", zap.Error(err))
		return g.persist(ctx, collectionID, fallbackQuestions, time.Since(start).Seconds())
	}

	var questions []string
	for _, line := range strings.Split(response, "\n") {
		q, ok := normalizeQuestion(line)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		g.logger.Warn("Model response contained no questions, using fallback questions")
		questions = fallbackQuestions
	}

	return g.persist(ctx, collectionID, questions, time.Since(start).Seconds())
}

// persist saves each question; a save failure drops that question only.
func (g *QuestionGenerator) persist(ctx context.Context, collectionID string, texts []string, elapsed float64) []models.Question {
	perQuestion := elapsed / float64(len(texts))

	var saved []models.Question
	for _, text := range texts {
		q := models.Question{
			ID:           uuid.NewString(),
			ParentID:     collectionID,
			ParentType:   "data_collection",
			QuestionText: text,
			TimeSpent:    perQuestion,
			CreatedAt:    time.Now(),
			AgentInfo:    g.agent,
		}
		if err := g.store.SaveQuestion(ctx, q); err != nil {
			g.logger.Error("Error saving question", zap.String("question", text), zap.Error(err))
			continue
		}
		saved = append(saved, q)
	}
	g.logger.Info("Generated questions", zap.Int("count", len(saved)))
	return saved
}

// buildContext renders the articles into the prompt context block.
func buildContext(data CollectedData) string {
	if len(data.Articles) == 0 {
		return "No specific articles available. Generating questions based on general trends."
	}
	var b strings.Builder
	b.WriteString("Based on the following news articles from various sources:\n\n")
	for _, a := range data.Articles {
		fmt.Fprintf(&b, "Source: %s\nTitle: %s\nSummary: %s\n\n", a.Source, a.Headline, a.Summary)
	}
	return b.String()
}

// normalizeQuestion filters and cleans one response line. A line qualifies
// when it contains a question marker; leading enumeration is stripped and a
// trailing "?" enforced.
func normalizeQuestion(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	lower := strings.ToLower(line)
	marked := false
	for _, m := range questionMarkers {
		if strings.Contains(lower, m) {
			marked = true
			break
		}
	}
	if !marked {
		return "", false
	}

	line = strings.TrimLeft(line, "0123456789.- ")
	if line == "" {
		return "", false
	}
	if !strings.HasSuffix(line, "?") {
		line += "?"
	}
	return line, true
}
