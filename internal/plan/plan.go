// Package plan turns declarative batch files into mutation operations.
//
// Two formats are supported: HCL plans (the native format) and YAML ops
// files (a flat list of set/remove requests, convenient for generated input).
package plan

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"grimm.is/etcnet/internal/ifacefile"
)

// planFile is the top-level HCL schema:
//
//	iface "eth0" "inet" {
//	  method = "static"
//	  options = { address = "10.0.0.2", netmask = "255.255.255.0" }
//	  up = ["route add -net 10.1.0.0/16 gw 10.0.0.1"]
//	  remove_options = ["mtu"]
//	}
//
//	iface "eth1" "inet" {
//	  absent = true
//	}
type planFile struct {
	Interfaces []*ifaceBlock `hcl:"iface,block"`
}

type ifaceBlock struct {
	Name    string         `hcl:"name,label"`
	Family  string         `hcl:"family,label"`
	Absent  bool           `hcl:"absent,optional"`
	Method  string         `hcl:"method,optional"`
	Options hcl.Expression `hcl:"options,optional"`
	PreUp   []string       `hcl:"pre_up,optional"`
	Up      []string       `hcl:"up,optional"`
	Down    []string       `hcl:"down,optional"`
	PostUp  []string       `hcl:"post_up,optional"`
	Remove  []string       `hcl:"remove_options,optional"`
}

// repeatable directive attributes, applied as duplicate-preserving appends in
// the order listed.
func (b *ifaceBlock) repeatable() []struct {
	key  string
	vals []string
} {
	return []struct {
		key  string
		vals []string
	}{
		{"pre-up", b.PreUp},
		{"up", b.Up},
		{"down", b.Down},
		{"post-up", b.PostUp},
	}
}

// LoadHCL reads an HCL plan file and compiles it to operations.
func LoadHCL(path string) ([]ifacefile.Operation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParseHCL(path, src)
}

// ParseHCL compiles HCL plan source to operations. Operations appear in
// block order; within a block: method, options (sorted by key), repeatable
// directives, removals.
func ParseHCL(filename string, src []byte) ([]ifacefile.Operation, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan: %s", diags.Error())
	}

	var pf planFile
	if diags := gohcl.DecodeBody(file.Body, nil, &pf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan: %s", diags.Error())
	}

	var ops []ifacefile.Operation
	for _, b := range pf.Interfaces {
		blockOps, err := b.operations()
		if err != nil {
			return nil, fmt.Errorf("iface %q %q: %w", b.Name, b.Family, err)
		}
		ops = append(ops, blockOps...)
	}
	return ops, nil
}

func (b *ifaceBlock) operations() ([]ifacefile.Operation, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("interface name must not be empty")
	}
	if b.Family == "" {
		return nil, fmt.Errorf("address family must not be empty")
	}
	key := ifacefile.InterfaceKey{Name: b.Name, Family: ifacefile.Family(b.Family)}

	if b.Absent {
		return []ifacefile.Operation{ifacefile.RemoveIface{Key: key}}, nil
	}

	var ops []ifacefile.Operation
	if b.Method != "" {
		ops = append(ops, ifacefile.EnsureIface{Key: key, Method: b.Method})
	}

	opts, err := b.optionMap()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ops = append(ops, ifacefile.SetOption{
			Key:        key,
			Option:     k,
			Value:      opts[k],
			AllMatches: ifacefile.IsRepeatable(k),
		})
	}

	for _, r := range b.repeatable() {
		for _, v := range r.vals {
			ops = append(ops, ifacefile.SetOption{Key: key, Option: r.key, Value: v, AllMatches: true})
		}
	}

	for _, opt := range b.Remove {
		ops = append(ops, ifacefile.RemoveOption{Key: key, Option: opt})
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("block requests nothing (set method, options, or absent)")
	}
	return ops, nil
}

// optionMap evaluates the options attribute into string pairs.
func (b *ifaceBlock) optionMap() (map[string]string, error) {
	if b.Options == nil {
		return nil, nil
	}
	val, diags := b.Options.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid options: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	val, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("options must be a map of strings: %w", err)
	}

	opts := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		opts[k.AsString()] = v.AsString()
	}
	return opts, nil
}
