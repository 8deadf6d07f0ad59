package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"grimm.is/etcnet/internal/ifacefile"
)

// rawOp is one element of a YAML ops file:
//
//	- iface: eth0
//	  option: mtu
//	  value: "1350"
//	- iface: eth0
//	  address_family: inet6
//	  option: up
//	  value: route add -net 224.0.0.0/4 dev eth0
//	- iface: eth1
//	  state: absent
//
// address_family defaults to inet and state to present. Repeatable
// directives (up, pre-up, ...) append rather than replace unless "all" is
// set explicitly.
type rawOp struct {
	Iface         string `yaml:"iface"`
	AddressFamily string `yaml:"address_family"`
	Option        string `yaml:"option"`
	Value         string `yaml:"value"`
	State         string `yaml:"state"`
	All           *bool  `yaml:"all"`
	Method        string `yaml:"method"`
}

// LoadOps reads a YAML ops file and compiles it to operations.
func LoadOps(path string) ([]ifacefile.Operation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ops file: %w", err)
	}
	return ParseOps(src)
}

// ParseOps compiles YAML ops source to operations, in list order.
func ParseOps(src []byte) ([]ifacefile.Operation, error) {
	var raw []rawOp
	if err := yaml.UnmarshalStrict(src, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode ops file: %w", err)
	}

	ops := make([]ifacefile.Operation, 0, len(raw))
	for n, r := range raw {
		op, err := r.operation()
		if err != nil {
			return nil, fmt.Errorf("ops file entry %d: %w", n+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (r rawOp) operation() (ifacefile.Operation, error) {
	if r.Iface == "" {
		return nil, fmt.Errorf("iface is required")
	}
	family := ifacefile.Family(r.AddressFamily)
	if family == "" {
		family = ifacefile.FamilyInet
	}
	key := ifacefile.InterfaceKey{Name: r.Iface, Family: family}

	state := r.State
	if state == "" {
		state = "present"
	}

	switch state {
	case "absent":
		if r.Option != "" {
			return ifacefile.RemoveOption{Key: key, Option: r.Option}, nil
		}
		return ifacefile.RemoveIface{Key: key}, nil

	case "present":
		if r.Option != "" {
			all := ifacefile.IsRepeatable(r.Option)
			if r.All != nil {
				all = *r.All
			}
			return ifacefile.SetOption{Key: key, Option: r.Option, Value: r.Value, AllMatches: all}, nil
		}
		if r.Method != "" {
			return ifacefile.EnsureIface{Key: key, Method: r.Method}, nil
		}
		return nil, fmt.Errorf("option or method is required when state is present")

	default:
		return nil, fmt.Errorf("unknown state %q (want present or absent)", state)
	}
}
