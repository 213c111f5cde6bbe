package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

const aiDetectPrompt = `You are an AI content detection assistant.
Analyze the following text to determine if it's AI-generated or human-written.
Evaluate based on these indicators:
1. Coherence/Consistency - AI text often has perfect structure but may lack depth
2. Creativity/Originality - Humans tend to use unique metaphors/personal experiences
3. Error Patterns - Look for unnatural phrasing or overly formal tone
4. Context Handling - Humans better maintain long-term context in complex narratives
5. Repetition Patterns - AI may repeat phrases with slight variations
6. Common AI Phrases - Identify phrases like 'it's important to note' or 'however, it's crucial'

Provide:
- AI_Content_Score (0-100): Probability of AI generation
- Human_Writing_Score (0-100): Probability of human authorship
- Reason: Concise analysis using the above indicators

Rules:
1. Scores must sum to 100
2. Be cautious with technical/scientific content
3. Consider domain-specific jargon
4. Account for possible human editing of AI content

Format response as valid JSON without markdown:
{"AI_Content_Score": X, "Human_Writing_Score": Y, "Reason": "..."}

Text to analyze: %s`

const factVerifyPrompt = `You are a fact-checking assistant. Your task is to verify the accuracy of the claims in the given article.
Analyze the content, check for factual inconsistencies, and compare it with reliable sources.

Respond in the following format:

- Factually Accurate: (true/false)
- Reasoning: [Provide a brief explanation for your assessment]

Here is the article content:
%s`

// aiVerdict is the JSON shape the detection prompt asks for.
type aiVerdict struct {
	AIContentScore    float64 `json:"AI_Content_Score"`
	HumanWritingScore float64 `json:"Human_Writing_Score"`
	Reason            string  `json:"Reason"`
}

// QualityScorer computes and persists quality metrics for a final article.
// Scoring is best-effort: no failure here ever fails the run.
type QualityScorer struct {
	store          Store
	llm            llm.Client
	trustedDomains []string
	logger         *zap.Logger
}

func NewQualityScorer(store Store, client llm.Client, trustedDomains []string, logger *zap.Logger) *QualityScorer {
	return &QualityScorer{store: store, llm: client, trustedDomains: trustedDomains, logger: logger}
}

// Score computes all metrics for the article and persists one QualityMetrics
// record. Individual metric failures degrade to zero values.
func (s *QualityScorer) Score(ctx context.Context, articleID, content string) {
	humanScore, err := s.DetectAIContent(ctx, content)
	if err != nil {
		s.logger.Error("AI content detection failed", zap.Error(err))
	}

	verified, analysis, err := s.VerifyFacts(ctx, content)
	if err != nil {
		s.logger.Error("Fact verification failed", zap.Error(err))
	}

	sourceScore, err := s.TrustedSourceScore(ctx)
	if err != nil {
		s.logger.Error("Trusted source scoring failed", zap.Error(err))
	}

	saveErr := s.store.SaveQualityMetrics(ctx, models.QualityMetrics{
		ParentID:           articleID,
		ParentType:         "news",
		HumanWritingScore:  humanScore,
		PlagiarismScore:    0,
		FactVerification:   verified,
		FactAnalysis:       analysis,
		TrustedSourceScore: sourceScore,
		CreatedAt:          time.Now(),
	})
	if saveErr != nil {
		s.logger.Error("Error saving quality metrics", zap.Error(saveErr))
		return
	}
	s.logger.Info("Quality metrics saved",
		zap.String("article_id", articleID),
		zap.Float64("human_writing_score", humanScore),
		zap.Bool("fact_verification", verified),
		zap.Float64("trusted_source_score", sourceScore))
}

// DetectAIContent asks the model for a JSON verdict and extracts the
// Human_Writing_Score.
func (s *QualityScorer) DetectAIContent(ctx context.Context, text string) (float64, error) {
	response, err := s.llm.Complete(ctx, fmt.Sprintf(aiDetectPrompt, text))
	if err != nil {
		return 0, err
	}

	var verdict aiVerdict
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(response)), &verdict); err != nil {
		return 0, fmt.Errorf("parse detection verdict: %w", err)
	}
	return verdict.HumanWritingScore, nil
}

// VerifyFacts asks the model to fact-check the article. The verdict is true
// when the response contains "true".
func (s *QualityScorer) VerifyFacts(ctx context.Context, content string) (bool, string, error) {
	response, err := s.llm.Complete(ctx, fmt.Sprintf(factVerifyPrompt, content))
	if err != nil {
		return false, "", err
	}
	response = strings.TrimSpace(response)
	return strings.Contains(strings.ToLower(response), "true"), response, nil
}

// TrustedSourceScore is the percentage of recorded source links whose URL
// matches one of the trusted domains. No sources at all scores zero.
func (s *QualityScorer) TrustedSourceScore(ctx context.Context) (float64, error) {
	links, err := s.store.SourceLinks(ctx)
	if err != nil {
		return 0, err
	}
	if len(links) == 0 {
		return 0, nil
	}

	trusted := 0
	for _, link := range links {
		for _, domain := range s.trustedDomains {
			if strings.Contains(link, domain) {
				trusted++
				break
			}
		}
	}
	return float64(trusted) / float64(len(links)) * 100, nil
}
