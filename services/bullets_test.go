package services

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseBullets_DashLines(t *testing.T) {
	points := ParseBullets("- first insight\n- second insight\nnot a bullet\n")
	assert.Equal(t, []string{"first insight", "second insight"}, points)
}

func TestParseBullets_BulletMarker(t *testing.T) {
	points := ParseBullets("• one\n• two")
	assert.Equal(t, []string{"one", "two"}, points)
}

func TestParseBullets_FallbackToLines(t *testing.T) {
	points := ParseBullets("first line\n\nsecond line")
	assert.Equal(t, []string{"first line", "second line"}, points)
}

func TestParseBullets_Empty(t *testing.T) {
	points := ParseBullets("")
	assert.Equal(t, []string{BulletPlaceholder}, points)

	points = ParseBullets("   \n\n  ")
	assert.Equal(t, []string{BulletPlaceholder}, points)
}

func TestParseBullets_Idempotent(t *testing.T) {
	inputs := []string{
		"- a\n- b",
		"plain\ntext",
		"",
	}
	for _, input := range inputs {
		once := ParseBullets(input)
		twice := ParseBullets(strings.Join(once, "\n"))
		assert.Equal(t, once, twice)
	}
}

func TestExtractHeadings(t *testing.T) {
	content := "# Title\n\nIntro text.\n\n## Section One\nBody.\n### Sub\nMore."
	assert.Equal(t, []string{"Title", "Section One", "Sub"}, ExtractHeadings(content))
}

func TestExtractHeadings_None(t *testing.T) {
	assert.Equal(t, 0, len(ExtractHeadings("just prose, no structure")))
}
