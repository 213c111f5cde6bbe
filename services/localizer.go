package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

const translatePrompt = `You are a professional translator. Translate the given text from English to French while maintaining clarity and context.

Translate the following tips into French:

%s`

// StyleMetrics describes the French text handed to article generation. Only
// ComplexWordsRatio and Similes feed the generation prompt; the rest is
// diagnostic.
type StyleMetrics struct {
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	LexicalDiversity  float64 `json:"lexical_diversity"`
	ComplexWordsRatio float64 `json:"complex_words_ratio"`
	Similes           int     `json:"similes"`
	FormalityScore    float64 `json:"formality_score"`
	Fragments         int     `json:"fragments"`
}

// Localizer translates the tip sheet to French.
type Localizer struct {
	store  Store
	llm    llm.Client
	logger *zap.Logger
}

func NewLocalizer(store Store, client llm.Client, logger *zap.Logger) *Localizer {
	return &Localizer{store: store, llm: client, logger: logger}
}

// Localize translates the tips and persists the result keyed by the
// collection id. Persist failures are logged only; the translated text still
// flows downstream.
func (l *Localizer) Localize(ctx context.Context, collectionID string, tips []string) (string, error) {
	response, err := l.llm.Complete(ctx, fmt.Sprintf(translatePrompt, strings.Join(tips, "\n")))
	if err != nil {
		return "", fmt.Errorf("translate tips: %w", err)
	}
	translated := strings.TrimSpace(response)
	if translated == "" {
		return "", fmt.Errorf("translate tips: empty response")
	}

	saveErr := l.store.SaveLocalizedTip(ctx, models.LocalizedTip{
		ParentID:      collectionID,
		LocalizedText: translated,
		CreatedAt:     time.Now(),
	})
	if saveErr != nil {
		l.logger.Error("Error saving localized tips", zap.Error(saveErr))
	}
	return translated, nil
}

// AnalyzeStyle computes descriptive metrics over a French text.
func AnalyzeStyle(text string) StyleMetrics {
	sentences := splitSentences(text)
	tokens := tokenize(text)

	var m StyleMetrics
	if len(sentences) > 0 {
		total := 0
		for _, s := range sentences {
			words := len(tokenize(s))
			total += words
			if words < 3 {
				m.Fragments++
			}
		}
		m.AvgSentenceLength = float64(total) / float64(len(sentences))
	}

	if len(tokens) > 0 {
		unique := make(map[string]struct{}, len(tokens))
		complexCount := 0
		for _, t := range tokens {
			unique[strings.ToLower(t)] = struct{}{}
			if len([]rune(t)) > 6 {
				complexCount++
			}
		}
		m.LexicalDiversity = float64(len(unique)) / float64(len(tokens))
		m.ComplexWordsRatio = float64(complexCount) / float64(len(tokens))
	}

	for i, t := range tokens {
		if strings.EqualFold(t, "comme") && i < len(tokens)-1 {
			m.Similes++
		}
	}

	// Formality proxy: share of declarative sentences. Exclamations and
	// direct questions read as informal in this register.
	if len(sentences) > 0 {
		declarative := 0
		for _, s := range sentences {
			if !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
				declarative++
			}
		}
		m.FormalityScore = float64(declarative) / float64(len(sentences))
	}

	return m
}

func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '-'
	})
}
