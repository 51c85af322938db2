package summarizer

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implSummarizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   generateFunc
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
// With no keys it is disabled.
func New(apiKeys []string, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &implSummarizer{
		apiKeys:  apiKeys,
		logger:   log,
		model:    model,
		generate: generateGemini,
	}
}
