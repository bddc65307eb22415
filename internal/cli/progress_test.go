package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, 3, false)

	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Add(2))
	require.NoError(t, bar.Finish())

	out := buf.String()
	assert.Contains(t, out, "translating")
	assert.Contains(t, out, "(3/3)")
	for _, markup := range []string{"[green]", "[cyan]", "[reset]"} {
		assert.NotContains(t, out, markup)
	}
}

func TestNewProgressBar_ColorOutput(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, 2, true)

	require.NoError(t, bar.Add(2))

	out := buf.String()
	// Markup is turned into escape sequences, never printed as-is
	assert.NotContains(t, out, "[green]")
	assert.Contains(t, out, "\x1b[")
}
