package ifacefile

import "strings"

// Stanza keywords recognized at the start of a logical line. Any "allow-"
// prefixed token is also a keyword (allow-auto, allow-hotplug, ...).
const (
	kwAuto            = "auto"
	kwAllowPrefix     = "allow-"
	kwIface           = "iface"
	kwMapping         = "mapping"
	kwSource          = "source"
	kwSourceDirectory = "source-directory"
)

func isKeyword(tok string) bool {
	switch tok {
	case kwAuto, kwIface, kwMapping, kwSource, kwSourceDirectory:
		return true
	}
	return strings.HasPrefix(tok, kwAllowPrefix) && len(tok) > len(kwAllowPrefix)
}

// Parse builds a Document from interfaces-file text. It either succeeds over
// the whole input or fails with a *ParseError carrying the offending line
// number; no partial Document is returned on failure.
//
// Duplicate (name, family) declarations do not fail the parse: the Document
// records them and [Document.AmbiguousKeys] exposes them, so a caller can
// refuse to mutate until the file is cleaned up.
func Parse(input string) (*Document, error) {
	lx := lex(input)
	doc := &Document{trailingNewline: lx.trailingNewline}

	// Open iface or mapping body, nil when at top level. A blank line or a
	// new keyword closes both; EOF is a valid terminator in any state.
	var curIface *Iface
	var curMapping *Mapping

	for _, ln := range lx.lines {
		switch {
		case isBlankText(ln.text):
			curIface, curMapping = nil, nil
			doc.entries = append(doc.entries, &BlankLine{raw: ln.raw})
			continue

		case isCommentText(ln.text):
			t := strings.TrimSpace(ln.text)
			c := &Comment{Marker: t[0], Text: strings.TrimSpace(t[1:]), raw: ln.raw}
			switch {
			case curIface != nil:
				curIface.Body = append(curIface.Body, c)
			case curMapping != nil:
				// Structurally irrelevant, but the raw block must keep it
				// in place for round-tripping.
				curMapping.raw = append(curMapping.raw, ln.raw...)
			default:
				doc.entries = append(doc.entries, c)
			}
			continue
		}

		fields := strings.Fields(ln.text)
		tok := fields[0]

		if !isKeyword(tok) {
			switch {
			case curIface != nil:
				// Option lines are recognized by position, not indentation;
				// files with unindented options parse the same way.
				curIface.Body = append(curIface.Body, &Option{
					Key:   tok,
					Value: restAfter(ln.text, tok),
					raw:   ln.raw,
				})
			case curMapping != nil:
				if err := parseMappingLine(curMapping, ln, fields); err != nil {
					return nil, err
				}
			default:
				return nil, &ParseError{Line: ln.num, Expected: "stanza keyword (auto, allow-*, iface, mapping, source, source-directory)", Got: tok}
			}
			continue
		}

		// A keyword terminates any open body and starts a new stanza.
		curIface, curMapping = nil, nil

		switch {
		case tok == kwIface:
			iface, err := parseIfaceHeader(ln, fields)
			if err != nil {
				return nil, err
			}
			doc.entries = append(doc.entries, iface)
			curIface = iface

		case tok == kwMapping:
			pattern := restAfter(ln.text, tok)
			if pattern == "" {
				return nil, &ParseError{Line: ln.num, Expected: "mapping pattern"}
			}
			m := &Mapping{Pattern: pattern, raw: ln.raw}
			doc.entries = append(doc.entries, m)
			curMapping = m

		case tok == kwAuto:
			doc.entries = append(doc.entries, &Auto{Names: fields[1:], raw: ln.raw})

		case tok == kwSource:
			pattern := restAfter(ln.text, tok)
			if pattern == "" {
				return nil, &ParseError{Line: ln.num, Expected: "source pattern"}
			}
			doc.entries = append(doc.entries, &Source{Pattern: pattern, raw: ln.raw})

		case tok == kwSourceDirectory:
			pattern := restAfter(ln.text, tok)
			if pattern == "" {
				return nil, &ParseError{Line: ln.num, Expected: "source directory pattern"}
			}
			doc.entries = append(doc.entries, &SourceDirectory{Pattern: pattern, raw: ln.raw})

		default: // allow-*
			doc.entries = append(doc.entries, &Allow{
				Trigger: strings.TrimPrefix(tok, kwAllowPrefix),
				Names:   fields[1:],
				raw:     ln.raw,
			})
		}
	}

	doc.rebuildIndex()
	return doc, nil
}

func parseIfaceHeader(ln logicalLine, fields []string) (*Iface, error) {
	if len(fields) < 2 {
		return nil, &ParseError{Line: ln.num, Expected: "interface name"}
	}
	if len(fields) < 3 {
		return nil, &ParseError{Line: ln.num, Expected: "address family"}
	}
	if len(fields) < 4 {
		return nil, &ParseError{Line: ln.num, Expected: "method"}
	}
	// A trailing inline comment on the header is legal; anything else after
	// the method is not part of the grammar.
	if len(fields) > 4 && !strings.HasPrefix(fields[4], "#") {
		return nil, &ParseError{Line: ln.num, Expected: "end of line after method", Got: fields[4]}
	}
	return &Iface{
		Name:   fields[1],
		Family: Family(fields[2]),
		Method: fields[3],
		line:   ln.num,
		raw:    ln.raw,
	}, nil
}

func parseMappingLine(m *Mapping, ln logicalLine, fields []string) error {
	switch fields[0] {
	case "script":
		if len(fields) < 2 {
			return &ParseError{Line: ln.num, Expected: "script path"}
		}
		m.Script = restAfter(ln.text, "script")
	case "map":
		if len(fields) < 3 {
			return &ParseError{Line: ln.num, Expected: "mapping value and result"}
		}
		m.Maps = append(m.Maps, MapEntry{
			Value:  fields[1],
			Result: strings.Join(fields[2:], " "),
		})
	default:
		return &ParseError{Line: ln.num, Expected: "script or map directive", Got: fields[0]}
	}
	m.raw = append(m.raw, ln.raw...)
	return nil
}

// restAfter returns everything after the first occurrence of tok, trimmed.
// Used for single-argument stanzas and option values, where the value is the
// remainder of the line rather than a single field.
func restAfter(text, tok string) string {
	at := strings.Index(text, tok)
	if at < 0 {
		return ""
	}
	return strings.TrimSpace(text[at+len(tok):])
}
