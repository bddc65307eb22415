package models

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")
	require.NotNil(t, lister)
	assert.Equal(t, "test-api-key", lister.apiKey)
	assert.NotNil(t, lister.client, "OpenAI client not initialized")
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	err := NewLister("").ListAvailableModels(context.Background(), &bytes.Buffer{})
	assert.EqualError(t, err, "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .vocabtrans.yaml")
}

func TestChatModels(t *testing.T) {
	ids := []string{
		"whisper-1",
		"gpt-4o-mini",
		"tts-1",
		"gpt-4o-mini-tts",
		"gpt-4o-audio-preview",
		"gpt-4o-realtime-preview",
		"dall-e-3",
		"gpt-4o",
		"chatgpt-4o-latest",
		"text-embedding-3-small",
	}

	assert.Equal(t, []string{"chatgpt-4o-latest", "gpt-4o", "gpt-4o-mini"}, chatModels(ids))
	assert.Empty(t, chatModels(nil))
}

func TestPrintModels(t *testing.T) {
	var buf bytes.Buffer
	printModels(&buf, []string{"gpt-4o", "gpt-4o-mini"})
	assert.Equal(t, "Chat models usable with --backend openai:\n  gpt-4o\n  gpt-4o-mini\n", buf.String())

	buf.Reset()
	printModels(&buf, nil)
	assert.Contains(t, buf.String(), "No chat models found")
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	var buf bytes.Buffer
	require.NoError(t, NewLister(apiKey).ListAvailableModels(context.Background(), &buf))
	assert.Contains(t, buf.String(), "gpt")
}
