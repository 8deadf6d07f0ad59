// Package ifacefile is a structured, lossless editor for Debian-style
// /etc/network/interfaces files.
//
// The package parses a file into an ordered [Document], applies targeted
// mutations that leave unrelated content untouched, and renders the result
// back to text. Rendering an unmutated Document reproduces the input byte for
// byte, comments, blank runs and continuation styling included; entries
// created or altered by a mutation render in canonical form.
//
// Documents are immutable after construction. Every mutation returns a new
// Document that shares untouched entries with its predecessor, so prior
// snapshots stay valid and may be read concurrently.
package ifacefile

// Document is the ordered in-memory representation of an interfaces file.
// Entry order is render order; nothing is ever reordered implicitly.
type Document struct {
	entries         []Entry
	trailingNewline bool

	// index maps each InterfaceKey to its entry positions. It is derived
	// state, rebuilt from the entry sequence after every parse and mutation,
	// never maintained incrementally.
	index map[InterfaceKey][]int
}

// Entries returns the document's entries in render order. The returned slice
// is a copy; the entries themselves are shared and must not be modified.
func (d *Document) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Len returns the number of top-level entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Interfaces lists every iface stanza's key in document order. Duplicate
// declarations appear once per occurrence.
func (d *Document) Interfaces() []InterfaceKey {
	var keys []InterfaceKey
	for _, e := range d.entries {
		if i, ok := e.(*Iface); ok {
			keys = append(keys, i.Key())
		}
	}
	return keys
}

// Lookup returns the iface stanza for key. It fails with
// *TargetNotFoundError when absent and *AmbiguousInterfaceError when the key
// is declared more than once.
func (d *Document) Lookup(key InterfaceKey) (*Iface, error) {
	pos, err := d.position(key)
	if err != nil {
		return nil, err
	}
	return d.entries[pos].(*Iface), nil
}

// Options returns the option lines of the iface identified by key, in
// original order, in-body comments excluded.
func (d *Document) Options(key InterfaceKey) ([]*Option, error) {
	iface, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	return iface.Options(), nil
}

// OptionValues returns the values of every option named optKey within the
// iface identified by key.
func (d *Document) OptionValues(key InterfaceKey, optKey string) ([]string, error) {
	iface, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	return iface.OptionValues(optKey), nil
}

// AmbiguousKeys returns the keys that are declared more than once, in
// document order of their first declaration. A non-empty result means the
// file needs manual cleanup before mutations against those keys are allowed.
func (d *Document) AmbiguousKeys() []InterfaceKey {
	var keys []InterfaceKey
	seen := make(map[InterfaceKey]bool)
	for _, e := range d.entries {
		i, ok := e.(*Iface)
		if !ok {
			continue
		}
		k := i.Key()
		if len(d.index[k]) > 1 && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	return keys
}

// position resolves key to a single entry position.
func (d *Document) position(key InterfaceKey) (int, error) {
	positions := d.index[key]
	switch len(positions) {
	case 0:
		return 0, &TargetNotFoundError{Key: key}
	case 1:
		return positions[0], nil
	default:
		lines := make([]int, len(positions))
		for n, p := range positions {
			lines[n] = d.entries[p].(*Iface).line
		}
		return 0, &AmbiguousInterfaceError{Key: key, Lines: lines}
	}
}

// rebuildIndex derives the lookup index from the authoritative entry
// sequence.
func (d *Document) rebuildIndex() {
	d.index = make(map[InterfaceKey][]int)
	for pos, e := range d.entries {
		if i, ok := e.(*Iface); ok {
			d.index[i.Key()] = append(d.index[i.Key()], pos)
		}
	}
}

// shallowClone copies the document and its entry slice. Entries are shared;
// a mutation clones the entries it touches before changing them.
func (d *Document) shallowClone() *Document {
	return &Document{
		entries:         append([]Entry(nil), d.entries...),
		trailingNewline: d.trailingNewline,
	}
}
