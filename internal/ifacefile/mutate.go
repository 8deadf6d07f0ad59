package ifacefile

// Operation is a single targeted mutation. Apply never modifies the input
// Document: it returns either the input unchanged (changed == false) or a new
// Document sharing every untouched entry with the input.
type Operation interface {
	Apply(doc *Document) (*Document, bool, error)
}

// Apply runs op against doc.
func Apply(doc *Document, op Operation) (*Document, bool, error) {
	return op.Apply(doc)
}

// repeatableOptions are directives that legitimately occur multiple times per
// stanza and are appended rather than replaced.
var repeatableOptions = map[string]bool{
	"pre-up":    true,
	"up":        true,
	"down":      true,
	"post-up":   true,
	"post-down": true,
	"pre-down":  true,
}

// IsRepeatable reports whether an option key is a repeatable directive, for
// which callers normally want duplicate-preserving appends.
func IsRepeatable(key string) bool {
	return repeatableOptions[key]
}

// EnsureIface guarantees that an iface stanza with the given key exists and
// uses the given method. A missing stanza is appended in canonical form,
// separated from a non-blank predecessor by one blank line. An existing
// stanza with a different method has its method rewritten in place, keeping
// position and options; a matching stanza reports unchanged.
type EnsureIface struct {
	Key    InterfaceKey
	Method string
}

func (op EnsureIface) Apply(doc *Document) (*Document, bool, error) {
	pos, err := doc.position(op.Key)
	if err != nil {
		if _, absent := err.(*TargetNotFoundError); !absent {
			return doc, false, err
		}
		next := doc.shallowClone()
		if n := len(next.entries); n > 0 {
			if _, blank := next.entries[n-1].(*BlankLine); !blank {
				next.entries = append(next.entries, &BlankLine{})
			}
		}
		next.entries = append(next.entries, &Iface{
			Name:   op.Key.Name,
			Family: op.Key.Family,
			Method: op.Method,
		})
		// Appending to a file without a final newline must not glue the new
		// stanza onto the last line.
		next.trailingNewline = true
		next.rebuildIndex()
		return next, true, nil
	}

	cur := doc.entries[pos].(*Iface)
	if cur.Method == op.Method {
		return doc, false, nil
	}
	next := doc.shallowClone()
	upd := cur.clone().(*Iface)
	upd.Method = op.Method
	upd.markModified()
	next.entries[pos] = upd
	next.rebuildIndex()
	return next, true, nil
}

// SetOption sets an option within an existing iface stanza.
//
// With AllMatches false, the first option with the given key is rewritten in
// place and any further duplicates of that key are removed; if none exists a
// new option is appended to the stanza body. With AllMatches true the option
// is treated as a repeatable directive: existing lines with the same key are
// left alone and a new line is appended, unless an identical (key, value)
// line is already present, which reports unchanged.
//
// The special key "method" rewrites the stanza header's method instead, the
// stanza itself keeping its position and options.
type SetOption struct {
	Key        InterfaceKey
	Option     string
	Value      string
	AllMatches bool
}

func (op SetOption) Apply(doc *Document) (*Document, bool, error) {
	pos, err := doc.position(op.Key)
	if err != nil {
		return doc, false, err
	}
	cur := doc.entries[pos].(*Iface)

	if op.Option == "method" {
		return EnsureIface{Key: op.Key, Method: op.Value}.Apply(doc)
	}

	if op.AllMatches {
		for _, o := range cur.Options() {
			if o.Key == op.Option && o.Value == op.Value {
				return doc, false, nil
			}
		}
		next := doc.shallowClone()
		upd := cur.clone().(*Iface)
		upd.Body = append(upd.Body, &Option{Key: op.Option, Value: op.Value})
		next.entries[pos] = upd
		next.rebuildIndex()
		return next, true, nil
	}

	first := -1
	duplicates := false
	for n, item := range cur.Body {
		o, ok := item.(*Option)
		if !ok || o.Key != op.Option {
			continue
		}
		if first < 0 {
			first = n
		} else {
			duplicates = true
		}
	}

	if first < 0 {
		next := doc.shallowClone()
		upd := cur.clone().(*Iface)
		upd.Body = append(upd.Body, &Option{Key: op.Option, Value: op.Value})
		next.entries[pos] = upd
		next.rebuildIndex()
		return next, true, nil
	}

	if !duplicates && cur.Body[first].(*Option).Value == op.Value {
		return doc, false, nil
	}

	next := doc.shallowClone()
	upd := cur.clone().(*Iface)
	target := upd.Body[first].(*Option)
	if target.Value != op.Value {
		target.rewriteValue(op.Value)
	}
	if duplicates {
		body := upd.Body[:first+1]
		for _, item := range upd.Body[first+1:] {
			if o, ok := item.(*Option); ok && o.Key == op.Option {
				continue
			}
			body = append(body, item)
		}
		upd.Body = body
	}
	next.entries[pos] = upd
	next.rebuildIndex()
	return next, true, nil
}

// RemoveOption removes every option with the given key from an existing iface
// stanza. It reports unchanged when the stanza exists but carries no such
// option, and fails with *TargetNotFoundError when the stanza is absent.
type RemoveOption struct {
	Key    InterfaceKey
	Option string
}

func (op RemoveOption) Apply(doc *Document) (*Document, bool, error) {
	pos, err := doc.position(op.Key)
	if err != nil {
		return doc, false, err
	}
	cur := doc.entries[pos].(*Iface)

	found := false
	for _, o := range cur.Options() {
		if o.Key == op.Option {
			found = true
			break
		}
	}
	if !found {
		return doc, false, nil
	}

	next := doc.shallowClone()
	upd := cur.clone().(*Iface)
	var body []BodyItem
	for _, item := range upd.Body {
		if o, ok := item.(*Option); ok && o.Key == op.Option {
			continue
		}
		body = append(body, item)
	}
	upd.Body = body
	next.entries[pos] = upd
	next.rebuildIndex()
	return next, true, nil
}

// RemoveIface removes an iface stanza, its body, and the contiguous run of
// comment lines immediately above it. Surrounding blank lines are left in
// place: rendering fidelity takes precedence over collapsing the gap.
type RemoveIface struct {
	Key InterfaceKey
}

func (op RemoveIface) Apply(doc *Document) (*Document, bool, error) {
	pos, err := doc.position(op.Key)
	if err != nil {
		return doc, false, err
	}

	start := pos
	for start > 0 {
		if _, ok := doc.entries[start-1].(*Comment); !ok {
			break
		}
		start--
	}

	next := doc.shallowClone()
	next.entries = append(next.entries[:start], next.entries[pos+1:]...)
	next.rebuildIndex()
	return next, true, nil
}
