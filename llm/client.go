package llm

import (
	"context"
	"strings"
)

// Client is a single-shot text completion collaborator. Every workflow stage
// builds its own prompt and gets raw text back; no streaming.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CleanJSONResponse strips code fences and surrounding prose from a model
// response that is supposed to be a single JSON object.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
