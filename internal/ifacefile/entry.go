package ifacefile

import "strings"

// Family is the address family of an iface stanza (inet, inet6, ipx, can, ...).
// The grammar does not close the set, so any token parses; the constants cover
// the families that appear in practice.
type Family string

const (
	FamilyInet  Family = "inet"
	FamilyInet6 Family = "inet6"
	FamilyIPX   Family = "ipx"
	FamilyCAN   Family = "can"
)

// InterfaceKey identifies an iface stanza. The same interface name may appear
// under several address families (eth0/inet and eth0/inet6 are distinct).
type InterfaceKey struct {
	Name   string
	Family Family
}

func (k InterfaceKey) String() string {
	return k.Name + "/" + string(k.Family)
}

// Entry is a single top-level element of an interfaces file. Concrete types:
// *BlankLine, *Comment, *Auto, *Allow, *Source, *SourceDirectory, *Mapping,
// *Iface. Render and diff resolve behavior with exhaustive type switches.
//
// Every entry remembers its original source lines; an entry with no recorded
// source (created or altered by a mutation) renders in canonical form.
type Entry interface {
	entry()
	clone() Entry
}

// BlankLine is an empty (or whitespace-only) line.
type BlankLine struct {
	raw []string
}

// Comment is a standalone comment line starting with '#' or '!'.
type Comment struct {
	Marker byte // '#' or '!'
	Text   string
	raw    []string
}

// Auto is an "auto <name>..." stanza.
type Auto struct {
	Names []string
	raw   []string
}

// Allow is an "allow-<trigger> <name>..." stanza, e.g. allow-hotplug.
type Allow struct {
	Trigger string
	Names   []string
	raw     []string
}

// Source is a "source <pattern>" stanza.
type Source struct {
	Pattern string
	raw     []string
}

// SourceDirectory is a "source-directory <pattern>" stanza.
type SourceDirectory struct {
	Pattern string
	raw     []string
}

// MapEntry is one "map <value> <result>" line of a mapping stanza.
type MapEntry struct {
	Value  string
	Result string
}

// Mapping is a "mapping <pattern>" stanza with its indented script/map body.
// The raw block covers the header and every body line, so a mapping that is
// never mutated round-trips byte for byte, including body comments.
type Mapping struct {
	Pattern string
	Script  string
	Maps    []MapEntry
	raw     []string
}

// BodyItem is an element of an iface body: an *Option or an in-body *Comment.
// Comments between option lines stay inside the block they interrupt; that is
// the only placement that preserves the original line order on render.
type BodyItem interface {
	bodyItem()
	cloneBody() BodyItem
}

// Option is a "key value" line inside an iface body. Duplicate keys are legal
// (repeatable directives such as up or pre-up) and are kept as distinct
// entries in insertion order.
type Option struct {
	Key   string
	Value string
	raw   []string
}

// Iface is an "iface <name> <family> <method>" stanza together with its body.
type Iface struct {
	Name   string
	Family Family
	Method string
	Body   []BodyItem
	line   int // source line of the header, 0 for created stanzas
	raw    []string
}

// Key returns the stanza's identity.
func (i *Iface) Key() InterfaceKey {
	return InterfaceKey{Name: i.Name, Family: i.Family}
}

// Options returns the body's option lines in original order, skipping in-body
// comments.
func (i *Iface) Options() []*Option {
	var opts []*Option
	for _, item := range i.Body {
		if o, ok := item.(*Option); ok {
			opts = append(opts, o)
		}
	}
	return opts
}

// OptionValues returns the values of every option with the given key, in
// original order.
func (i *Iface) OptionValues(key string) []string {
	var vals []string
	for _, o := range i.Options() {
		if o.Key == key {
			vals = append(vals, o.Value)
		}
	}
	return vals
}

func (*BlankLine) entry()       {}
func (*Comment) entry()         {}
func (*Auto) entry()            {}
func (*Allow) entry()           {}
func (*Source) entry()          {}
func (*SourceDirectory) entry() {}
func (*Mapping) entry()         {}
func (*Iface) entry()           {}

func (*Comment) bodyItem() {}
func (*Option) bodyItem()  {}

func (e *BlankLine) clone() Entry {
	c := *e
	return &c
}

func (e *Comment) clone() Entry {
	c := *e
	return &c
}

func (e *Auto) clone() Entry {
	c := *e
	c.Names = append([]string(nil), e.Names...)
	return &c
}

func (e *Allow) clone() Entry {
	c := *e
	c.Names = append([]string(nil), e.Names...)
	return &c
}

func (e *Source) clone() Entry {
	c := *e
	return &c
}

func (e *SourceDirectory) clone() Entry {
	c := *e
	return &c
}

func (e *Mapping) clone() Entry {
	c := *e
	c.Maps = append([]MapEntry(nil), e.Maps...)
	return &c
}

func (e *Iface) clone() Entry {
	c := *e
	c.Body = make([]BodyItem, len(e.Body))
	for n, item := range e.Body {
		c.Body[n] = item.cloneBody()
	}
	return &c
}

func (e *Comment) cloneBody() BodyItem {
	c := *e
	return &c
}

func (e *Option) cloneBody() BodyItem {
	c := *e
	return &c
}

// markModified drops the recorded source so the renderer emits the canonical
// form.
func (e *Iface) markModified()  { e.raw = nil }
func (o *Option) markModified() { o.raw = nil }

// rewriteValue updates the option value in place. When the option still has
// its original single source line, the line's indentation and the spacing
// between key and value are preserved and only the value portion is replaced;
// otherwise the option falls back to canonical rendering.
func (o *Option) rewriteValue(value string) {
	if len(o.raw) == 1 && o.Value != "" {
		line := strings.TrimRight(o.raw[0], " \t")
		if strings.HasSuffix(line, o.Value) {
			o.raw = []string{line[:len(line)-len(o.Value)] + value}
			o.Value = value
			return
		}
	}
	o.Value = value
	o.markModified()
}
