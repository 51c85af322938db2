package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

const summaryPrompt = `You are an assistant that writes meeting minutes. Based on the speaker-attributed transcript below, write a concise summary in the language of the transcript.

Requirements:
- Start with a one-sentence overview of what the meeting was about
- List the main topics in the order they were discussed
- List every decision and action item, with the owner when one is named
- Use markdown: headings, bullet points, bold for key terms
- Do not invent content that is not in the transcript

Transcript:
---
%s
---`

var errRateLimited = errors.New("rate limited")

func (s *implSummarizer) Enabled() bool {
	return len(s.apiKeys) > 0
}

// Summarize sends the transcript to Gemini and returns the summary text.
func (s *implSummarizer) Summarize(ctx context.Context, entries []meeting.Entry) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("no Gemini API keys configured")
	}
	if len(entries) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s\n", e.Speaker, e.Text)
	}
	prompt := fmt.Sprintf(summaryPrompt, b.String())

	summary, err := s.callGemini(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// callGemini rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for range len(s.apiKeys) {
		key, idx := s.key()

		text, err := s.generate(ctx, key, s.model, prompt)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, errRateLimited) || isQuotaError(err) {
			s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			s.rotateKey(idx)
			lastErr = err
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) key() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

// rotateKey advances past idx unless another caller already moved on.
func (s *implSummarizer) rotateKey(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == idx {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("%w: %v", errRateLimited, err)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
