package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"aipress/llm"
	"aipress/models"
)

const defaultArticleTopic = "Actualités bancaires numériques"

const articlePrompt = `Tu es un rédacteur expert francophone. Respecte ces consignes :
- Longueur : Minimum 800 mots, 5 sections structurées
- Style : %s avec des transitions fluides
- Structure : Titre percutant, introduction choc, 3-5 sous-sections détaillées, conclusion impactante
- Éléments requis :
  * 2-3 citations explicites (ex: "Selon l'étude X...")
  * Des données chiffrées crédibles
  * Au moins %d comparaisons/concrétisations
  * Vocabulaire technique modéré (%.0f%% de termes complexes)

Produis un article complet et détaillé EXCLUSIVEMENT en français.

Rédige un article détaillé sur : %s

Appuie-toi sur ces recommandations :
%s`

// ArticleGenerator produces the final French article from the localized
// tips.
type ArticleGenerator struct {
	store  Store
	llm    llm.Client
	logger *zap.Logger
}

func NewArticleGenerator(store Store, client llm.Client, logger *zap.Logger) *ArticleGenerator {
	return &ArticleGenerator{store: store, llm: client, logger: logger}
}

// Generate writes the article from the French tips, persists it and returns
// the stored document id with the content. An empty model response is fatal
// for the stage.
func (g *ArticleGenerator) Generate(ctx context.Context, collectionID, topic, frenchTips string, style StyleMetrics) (string, string, error) {
	if topic == "" {
		topic = defaultArticleTopic
	}

	tone := "professionnel"
	if style.FormalityScore > 0.7 {
		tone = "formel"
	}
	similes := style.Similes
	if similes < 2 {
		similes = 2
	}

	prompt := fmt.Sprintf(articlePrompt, tone, similes, style.ComplexWordsRatio*100, topic, frenchTips)
	content, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("generate article: %w", err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", fmt.Errorf("generate article: no content in response")
	}

	headings := ExtractHeadings(content)
	now := time.Now()
	articleID, err := g.store.SaveFinalArticle(ctx, models.FinalArticle{
		CollectionID: collectionID,
		Title: models.ArticleTitle{
			Original:  fmt.Sprintf("Analyse: %s", topic),
			Localized: fmt.Sprintf("Analyse: %s", topic),
		},
		Content:       content,
		Headings:      headings,
		PublishedDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
		Status:        "draft",
		Metadata: models.ArticleMetadata{
			HasHeadings:  len(headings) > 0,
			HeadingCount: len(headings),
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("save article: %w", err)
	}

	g.logger.Info("Final article saved",
		zap.String("article_id", articleID),
		zap.Int("headings", len(headings)),
		zap.Int("length", len(content)))
	return articleID, content, nil
}
