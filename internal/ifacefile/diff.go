package ifacefile

import (
	"fmt"
	"strings"
)

// ChangeKind classifies a structural difference between two documents.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeModified
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	}
	return "unknown"
}

// Change describes one structural difference, at iface or option
// granularity.
type Change struct {
	Kind   ChangeKind
	Entry  string // e.g. "iface eth0/inet", "option eth0/inet address"
	Detail string
}

func (c Change) String() string {
	s := c.Kind.String() + " " + c.Entry
	if c.Detail != "" {
		s += ": " + c.Detail
	}
	return s
}

// Equal reports whether two documents are structurally equal: same ordered
// entries with the same field values. Formatting metadata (original versus
// canonical rendering) is ignored, so a document equals its freshly reparsed
// rendering even after mutations.
func Equal(a, b *Document) bool {
	if len(a.entries) != len(b.entries) {
		return false
	}
	for n := range a.entries {
		if !entryEqual(a.entries[n], b.entries[n]) {
			return false
		}
	}
	return true
}

func entryEqual(a, b Entry) bool {
	switch a := a.(type) {
	case *BlankLine:
		_, ok := b.(*BlankLine)
		return ok
	case *Comment:
		bc, ok := b.(*Comment)
		return ok && a.Marker == bc.Marker && a.Text == bc.Text
	case *Auto:
		ba, ok := b.(*Auto)
		return ok && sliceEqual(a.Names, ba.Names)
	case *Allow:
		bl, ok := b.(*Allow)
		return ok && a.Trigger == bl.Trigger && sliceEqual(a.Names, bl.Names)
	case *Source:
		bs, ok := b.(*Source)
		return ok && a.Pattern == bs.Pattern
	case *SourceDirectory:
		bs, ok := b.(*SourceDirectory)
		return ok && a.Pattern == bs.Pattern
	case *Mapping:
		bm, ok := b.(*Mapping)
		if !ok || a.Pattern != bm.Pattern || a.Script != bm.Script || len(a.Maps) != len(bm.Maps) {
			return false
		}
		for n := range a.Maps {
			if a.Maps[n] != bm.Maps[n] {
				return false
			}
		}
		return true
	case *Iface:
		bi, ok := b.(*Iface)
		if !ok || a.Name != bi.Name || a.Family != bi.Family || a.Method != bi.Method {
			return false
		}
		return bodyEqual(a.Body, bi.Body)
	}
	return false
}

func bodyEqual(a, b []BodyItem) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		switch item := a[n].(type) {
		case *Option:
			o, ok := b[n].(*Option)
			if !ok || item.Key != o.Key || item.Value != o.Value {
				return false
			}
		case *Comment:
			c, ok := b[n].(*Comment)
			if !ok || item.Marker != c.Marker || item.Text != c.Text {
				return false
			}
		}
	}
	return true
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if a[n] != b[n] {
			return false
		}
	}
	return true
}

// Compare describes the structural differences between two documents at
// iface/option granularity, driving both the "changed" result and check-mode
// reporting. An empty result means the documents are structurally equal.
func Compare(before, after *Document) []Change {
	var changes []Change

	beforeIfaces := ifacesByKey(before)
	afterIfaces := ifacesByKey(after)

	// Document order of the before side, then additions in after order.
	for _, key := range before.Interfaces() {
		b := beforeIfaces[key]
		a, ok := afterIfaces[key]
		if !ok {
			changes = append(changes, Change{Kind: ChangeRemoved, Entry: "iface " + key.String()})
			continue
		}
		changes = append(changes, compareIface(key, b, a)...)
	}
	seen := make(map[InterfaceKey]bool)
	for _, key := range before.Interfaces() {
		seen[key] = true
	}
	for _, key := range after.Interfaces() {
		if !seen[key] {
			a := afterIfaces[key]
			changes = append(changes, Change{
				Kind:   ChangeAdded,
				Entry:  "iface " + key.String(),
				Detail: "method " + a.Method,
			})
		}
	}

	if len(changes) == 0 && !Equal(before, after) {
		changes = append(changes, Change{
			Kind:   ChangeModified,
			Entry:  "document",
			Detail: "entries outside iface stanzas differ",
		})
	}
	return changes
}

func ifacesByKey(d *Document) map[InterfaceKey]*Iface {
	m := make(map[InterfaceKey]*Iface)
	for _, e := range d.entries {
		if i, ok := e.(*Iface); ok {
			if _, dup := m[i.Key()]; !dup {
				m[i.Key()] = i
			}
		}
	}
	return m
}

func compareIface(key InterfaceKey, before, after *Iface) []Change {
	var changes []Change
	if before.Method != after.Method {
		changes = append(changes, Change{
			Kind:   ChangeModified,
			Entry:  "iface " + key.String(),
			Detail: fmt.Sprintf("method %s is now %s", before.Method, after.Method),
		})
	}

	optKeys := orderedOptionKeys(before, after)
	for _, opt := range optKeys {
		b := before.OptionValues(opt)
		a := after.OptionValues(opt)
		if sliceEqual(b, a) {
			continue
		}
		entry := "option " + key.String() + " " + opt
		switch {
		case len(b) == 0:
			changes = append(changes, Change{Kind: ChangeAdded, Entry: entry, Detail: strings.Join(a, ", ")})
		case len(a) == 0:
			changes = append(changes, Change{Kind: ChangeRemoved, Entry: entry, Detail: strings.Join(b, ", ")})
		default:
			changes = append(changes, Change{
				Kind:   ChangeModified,
				Entry:  entry,
				Detail: fmt.Sprintf("%s is now %s", strings.Join(b, ", "), strings.Join(a, ", ")),
			})
		}
	}
	return changes
}

func orderedOptionKeys(before, after *Iface) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, i := range []*Iface{before, after} {
		for _, o := range i.Options() {
			if !seen[o.Key] {
				keys = append(keys, o.Key)
				seen[o.Key] = true
			}
		}
	}
	return keys
}
