package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

var transcript = []meeting.Entry{
	{Speaker: "John Doe", Text: "We ship on friday"},
	{Speaker: "Jane Smith", Text: "I will prepare the release notes"},
}

func newTestSummarizer(keys []string, gen generateFunc) *implSummarizer {
	s := New(keys, "", logger.NewNop()).(*implSummarizer)
	s.generate = gen
	return s
}

func TestSummarizeDisabled(t *testing.T) {
	s := New(nil, "", logger.NewNop())
	assert.False(t, s.Enabled())
	_, err := s.Summarize(context.Background(), transcript)
	assert.Error(t, err)
}

func TestSummarizeBuildsPrompt(t *testing.T) {
	var gotModel, gotPrompt string
	s := newTestSummarizer([]string{"k1"}, func(ctx context.Context, key, model, prompt string) (string, error) {
		gotModel, gotPrompt = model, prompt
		return "  ## Overview\nRelease planning  ", nil
	})

	summary, err := s.Summarize(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, "## Overview\nRelease planning", summary)
	assert.Equal(t, defaultModel, gotModel)
	assert.True(t, strings.Contains(gotPrompt, "John Doe: We ship on friday"))
	assert.True(t, strings.Contains(gotPrompt, "Jane Smith: I will prepare the release notes"))
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	called := false
	s := newTestSummarizer([]string{"k1"}, func(ctx context.Context, key, model, prompt string) (string, error) {
		called = true
		return "x", nil
	})
	summary, err := s.Summarize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.False(t, called)
}

func TestSummarizeRotatesKeys(t *testing.T) {
	var used []string
	s := newTestSummarizer([]string{"k1", "k2", "k3"}, func(ctx context.Context, key, model, prompt string) (string, error) {
		used = append(used, key)
		if key == "k3" {
			return "ok", nil
		}
		return "", errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")
	})

	summary, err := s.Summarize(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)
	assert.Equal(t, []string{"k1", "k2", "k3"}, used)
	assert.Equal(t, 2, s.currentKey)
}

func TestSummarizeAllKeysExhausted(t *testing.T) {
	s := newTestSummarizer([]string{"k1", "k2"}, func(ctx context.Context, key, model, prompt string) (string, error) {
		return "", errRateLimited
	})

	_, err := s.Summarize(context.Background(), transcript)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all API keys exhausted")
}

func TestSummarizeStopsOnOtherErrors(t *testing.T) {
	calls := 0
	s := newTestSummarizer([]string{"k1", "k2"}, func(ctx context.Context, key, model, prompt string) (string, error) {
		calls++
		return "", errors.New("invalid argument")
	})

	_, err := s.Summarize(context.Background(), transcript)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
