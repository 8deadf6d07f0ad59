package ifacefile

import "strings"

// logicalLine is one parser-visible line, possibly folded together from
// several physical lines by backslash continuation. The original physical
// lines are kept verbatim so an untouched entry can be re-rendered byte for
// byte.
type logicalLine struct {
	num  int      // 1-based number of the first physical line
	text string   // folded text, continuations resolved
	raw  []string // physical lines without their newline terminators
}

type lexResult struct {
	lines []logicalLine
	// trailingNewline records whether the input ended with '\n'; render
	// reproduces it exactly.
	trailingNewline bool
}

// lex splits raw input into logical lines. A physical line ending in an
// unescaped backslash is folded with the next one (the backslash and the line
// break are removed, matching ifupdown). Comment lines are never folded.
func lex(input string) lexResult {
	res := lexResult{trailingNewline: strings.HasSuffix(input, "\n")}
	if input == "" {
		return res
	}

	physical := strings.Split(input, "\n")
	if res.trailingNewline {
		physical = physical[:len(physical)-1]
	}

	for i := 0; i < len(physical); i++ {
		line := logicalLine{
			num:  i + 1,
			text: physical[i],
			raw:  []string{physical[i]},
		}
		if !isCommentText(line.text) {
			for hasContinuation(line.text) && i+1 < len(physical) {
				line.text = line.text[:len(line.text)-1] + physical[i+1]
				line.raw = append(line.raw, physical[i+1])
				i++
			}
		}
		res.lines = append(res.lines, line)
	}
	return res
}

// hasContinuation reports whether the line ends in an unescaped backslash,
// i.e. an odd-length run of trailing backslashes.
func hasContinuation(line string) bool {
	n := 0
	for n < len(line) && line[len(line)-1-n] == '\\' {
		n++
	}
	return n%2 == 1
}

func isCommentText(text string) bool {
	t := strings.TrimSpace(text)
	return len(t) > 0 && (t[0] == '#' || t[0] == '!')
}

func isBlankText(text string) bool {
	return strings.TrimSpace(text) == ""
}
