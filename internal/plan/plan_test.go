package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/etcnet/internal/ifacefile"
)

var eth0 = ifacefile.InterfaceKey{Name: "eth0", Family: ifacefile.FamilyInet}

func TestParseHCLFullBlock(t *testing.T) {
	src := `
iface "eth0" "inet" {
  method = "static"
  options = {
    address = "10.0.0.2"
    netmask = "255.255.255.0"
  }
  up             = ["route add -net 10.1.0.0/16 gw 10.0.0.1"]
  remove_options = ["mtu"]
}
`
	ops, err := ParseHCL("plan.hcl", []byte(src))
	require.NoError(t, err)
	require.Len(t, ops, 5)

	assert.Equal(t, ifacefile.EnsureIface{Key: eth0, Method: "static"}, ops[0])
	// Options come sorted by key.
	assert.Equal(t, ifacefile.SetOption{Key: eth0, Option: "address", Value: "10.0.0.2"}, ops[1])
	assert.Equal(t, ifacefile.SetOption{Key: eth0, Option: "netmask", Value: "255.255.255.0"}, ops[2])
	assert.Equal(t, ifacefile.SetOption{Key: eth0, Option: "up", Value: "route add -net 10.1.0.0/16 gw 10.0.0.1", AllMatches: true}, ops[3])
	assert.Equal(t, ifacefile.RemoveOption{Key: eth0, Option: "mtu"}, ops[4])
}

func TestParseHCLAbsent(t *testing.T) {
	ops, err := ParseHCL("plan.hcl", []byte(`
iface "eth1" "inet" {
  absent = true
}
`))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, ifacefile.RemoveIface{Key: ifacefile.InterfaceKey{Name: "eth1", Family: ifacefile.FamilyInet}}, ops[0])
}

func TestParseHCLRepeatableOptionInMap(t *testing.T) {
	ops, err := ParseHCL("plan.hcl", []byte(`
iface "eth0" "inet" {
  options = { up = "cmd one" }
}
`))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	set, ok := ops[0].(ifacefile.SetOption)
	require.True(t, ok)
	assert.True(t, set.AllMatches, "up is a repeatable directive")
}

func TestParseHCLEmptyBlockRejected(t *testing.T) {
	_, err := ParseHCL("plan.hcl", []byte(`
iface "eth0" "inet" {
}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requests nothing")
}

func TestParseHCLInvalidSyntax(t *testing.T) {
	_, err := ParseHCL("plan.hcl", []byte(`iface "eth0" {`))
	require.Error(t, err)
}

func TestParseHCLMultipleBlocksKeepOrder(t *testing.T) {
	src := `
iface "eth0" "inet" {
  method = "dhcp"
}

iface "eth0" "inet6" {
  method = "auto"
}
`
	ops, err := ParseHCL("plan.hcl", []byte(src))
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, ifacefile.EnsureIface{Key: eth0, Method: "dhcp"}, ops[0])
	assert.Equal(t, ifacefile.EnsureIface{
		Key:    ifacefile.InterfaceKey{Name: "eth0", Family: ifacefile.FamilyInet6},
		Method: "auto",
	}, ops[1])
}
