package ifacefile

import "strings"

// canonicalIndent is used for option lines in stanzas that carry no
// indentation of their own to inherit.
const canonicalIndent = "    "

// Render serializes the document. Entries untouched since parse are emitted
// from their recorded source lines, so a document that has undergone no
// mutation reproduces the original input byte for byte. Entries created or
// altered by a mutation are emitted in canonical form: single-space token
// separation, options indented, no trailing whitespace.
func Render(doc *Document) string {
	var lines []string
	for _, e := range doc.entries {
		lines = append(lines, renderEntry(e)...)
	}
	if len(lines) == 0 {
		return ""
	}
	out := strings.Join(lines, "\n")
	if doc.trailingNewline {
		out += "\n"
	}
	return out
}

func renderEntry(e Entry) []string {
	switch e := e.(type) {
	case *BlankLine:
		if e.raw != nil {
			return e.raw
		}
		return []string{""}

	case *Comment:
		if e.raw != nil {
			return e.raw
		}
		return []string{canonicalComment(e, "")}

	case *Auto:
		if e.raw != nil {
			return e.raw
		}
		return []string{strings.TrimRight("auto "+strings.Join(e.Names, " "), " ")}

	case *Allow:
		if e.raw != nil {
			return e.raw
		}
		return []string{strings.TrimRight("allow-"+e.Trigger+" "+strings.Join(e.Names, " "), " ")}

	case *Source:
		if e.raw != nil {
			return e.raw
		}
		return []string{"source " + e.Pattern}

	case *SourceDirectory:
		if e.raw != nil {
			return e.raw
		}
		return []string{"source-directory " + e.Pattern}

	case *Mapping:
		if e.raw != nil {
			return e.raw
		}
		lines := []string{"mapping " + e.Pattern}
		if e.Script != "" {
			lines = append(lines, canonicalIndent+"script "+e.Script)
		}
		for _, m := range e.Maps {
			lines = append(lines, canonicalIndent+"map "+m.Value+" "+m.Result)
		}
		return lines

	case *Iface:
		return renderIface(e)
	}
	return nil
}

func renderIface(i *Iface) []string {
	var lines []string
	if i.raw != nil {
		lines = append(lines, i.raw...)
	} else {
		lines = append(lines, "iface "+i.Name+" "+string(i.Family)+" "+i.Method)
	}

	indent := bodyIndent(i)
	for _, item := range i.Body {
		switch item := item.(type) {
		case *Option:
			if item.raw != nil {
				lines = append(lines, item.raw...)
				continue
			}
			line := indent + item.Key
			if item.Value != "" {
				line += " " + item.Value
			}
			lines = append(lines, line)
		case *Comment:
			if item.raw != nil {
				lines = append(lines, item.raw...)
				continue
			}
			lines = append(lines, canonicalComment(item, indent))
		}
	}
	return lines
}

// bodyIndent picks the indentation for canonically rendered option lines:
// whatever the stanza's existing lines use, else four spaces.
func bodyIndent(i *Iface) string {
	for _, item := range i.Body {
		o, ok := item.(*Option)
		if !ok || len(o.raw) == 0 {
			continue
		}
		line := o.raw[0]
		trimmed := strings.TrimLeft(line, " \t")
		if indent := line[:len(line)-len(trimmed)]; indent != "" {
			return indent
		}
	}
	return canonicalIndent
}

func canonicalComment(c *Comment, indent string) string {
	marker := c.Marker
	if marker == 0 {
		marker = '#'
	}
	line := indent + string(marker)
	if c.Text != "" {
		line += " " + c.Text
	}
	return line
}
