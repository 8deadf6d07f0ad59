package ifacefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexSimpleLines(t *testing.T) {
	res := lex("auto eth0\niface eth0 inet dhcp\n")
	require.Len(t, res.lines, 2)
	assert.True(t, res.trailingNewline)

	assert.Equal(t, 1, res.lines[0].num)
	assert.Equal(t, "auto eth0", res.lines[0].text)
	assert.Equal(t, []string{"auto eth0"}, res.lines[0].raw)

	assert.Equal(t, 2, res.lines[1].num)
	assert.Equal(t, "iface eth0 inet dhcp", res.lines[1].text)
}

func TestLexContinuation(t *testing.T) {
	res := lex("up route add \\\n    -net 10.0.0.0\nauto eth0\n")
	require.Len(t, res.lines, 2)

	folded := res.lines[0]
	assert.Equal(t, 1, folded.num)
	assert.Equal(t, "up route add     -net 10.0.0.0", folded.text)
	assert.Equal(t, []string{"up route add \\", "    -net 10.0.0.0"}, folded.raw)

	// The line after a fold keeps its original physical number.
	assert.Equal(t, 3, res.lines[1].num)
	assert.Equal(t, "auto eth0", res.lines[1].text)
}

func TestLexEscapedBackslashDoesNotContinue(t *testing.T) {
	res := lex("up echo a\\\\\nauto eth0\n")
	require.Len(t, res.lines, 2)
	assert.Equal(t, "up echo a\\\\", res.lines[0].text)
}

func TestLexCommentLinesDoNotFold(t *testing.T) {
	res := lex("# trailing backslash \\\nauto eth0\n")
	require.Len(t, res.lines, 2)
	assert.Equal(t, "# trailing backslash \\", res.lines[0].text)
	assert.Equal(t, "auto eth0", res.lines[1].text)
}

func TestLexContinuationAtEOF(t *testing.T) {
	res := lex("up echo hello \\")
	require.Len(t, res.lines, 1)
	// Nothing to fold with; the backslash stays literal.
	assert.Equal(t, "up echo hello \\", res.lines[0].text)
	assert.False(t, res.trailingNewline)
}

func TestLexTrailingNewline(t *testing.T) {
	assert.True(t, lex("auto eth0\n").trailingNewline)
	assert.False(t, lex("auto eth0").trailingNewline)
	assert.Empty(t, lex("").lines)
}
