package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.Info("file written", "path", "/etc/network/interfaces", "changed", true)

	out := buf.String()
	assert.Contains(t, out, "[info]")
	assert.Contains(t, out, "file written")
	assert.Contains(t, out, "path=/etc/network/interfaces")
	assert.Contains(t, out, "changed=true")
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.Debug("applied", "op", "set option up")
	assert.Contains(t, buf.String(), `op="set option up"`)
}

func TestComponentPromotedToHeader(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf}).WithComponent("editor")

	l.Info("starting")
	line := buf.String()
	assert.Contains(t, line, "editor: starting")
	assert.NotContains(t, line, "component=")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(LevelDebug)
	l.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, JSON: true})

	l.Info("file written", "changed", true)
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"changed":true`)
}
