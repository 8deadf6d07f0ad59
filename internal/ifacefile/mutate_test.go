package ifacefile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eth0 = InterfaceKey{Name: "eth0", Family: FamilyInet}

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Parse(input)
	require.NoError(t, err)
	return doc
}

func TestSetOptionReplacesValue(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\taddress 10.0.0.1\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "address", Value: "10.0.0.2"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "iface eth0 inet static\n\taddress 10.0.0.2\n", Render(doc2))

	// The input document is untouched.
	assert.Equal(t, "iface eth0 inet static\n\taddress 10.0.0.1\n", Render(doc))
}

func TestSetOptionSameValueUnchanged(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\taddress 10.0.0.1\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "address", Value: "10.0.0.1"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Render(doc), Render(doc2))
}

func TestSetOptionAppendsWhenMissing(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\taddress 10.0.0.1\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "mtu", Value: "1350"})
	require.NoError(t, err)
	assert.True(t, changed)

	vals, err := doc2.OptionValues(eth0, "mtu")
	require.NoError(t, err)
	assert.Equal(t, []string{"1350"}, vals)
}

func TestSetOptionCollapsesDuplicates(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\tmtu 1500\n\taddress 10.0.0.1\n\tmtu 9000\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "mtu", Value: "1350"})
	require.NoError(t, err)
	assert.True(t, changed)
	// First occurrence rewritten in place, later duplicates dropped.
	assert.Equal(t, "iface eth0 inet static\n\tmtu 1350\n\taddress 10.0.0.1\n", Render(doc2))
}

func TestSetOptionCollapsesDuplicatesEvenWithMatchingFirst(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\tmtu 1350\n\tmtu 9000\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "mtu", Value: "1350"})
	require.NoError(t, err)
	assert.True(t, changed, "removing duplicates is a change even when the first value matches")
	assert.Equal(t, "iface eth0 inet static\n\tmtu 1350\n", Render(doc2))
}

func TestSetOptionAllMatchesAppends(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\tup cmd one\n")

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "up", Value: "cmd two", AllMatches: true})
	require.NoError(t, err)
	assert.True(t, changed)

	vals, err := doc2.OptionValues(eth0, "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd one", "cmd two"}, vals)

	// Identical line already present: no second copy.
	doc3, changed, err := Apply(doc2, SetOption{Key: eth0, Option: "up", Value: "cmd two", AllMatches: true})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Render(doc2), Render(doc3))
}

func TestSetOptionMethod(t *testing.T) {
	doc := mustParse(t, "iface eth1 inet static\n\taddress 10.0.0.1\n")
	key := InterfaceKey{"eth1", FamilyInet}

	doc2, changed, err := Apply(doc, SetOption{Key: key, Option: "method", Value: "dhcp"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "iface eth1 inet dhcp\n\taddress 10.0.0.1\n", Render(doc2))

	_, changed, err = Apply(doc2, SetOption{Key: key, Option: "method", Value: "dhcp"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetOptionTargetNotFound(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n")

	_, changed, err := Apply(doc, SetOption{Key: InterfaceKey{"eth9", FamilyInet}, Option: "mtu", Value: "1500"})
	assert.False(t, changed)

	var nf *TargetNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, InterfaceKey{"eth9", FamilyInet}, nf.Key)
}

func TestSetOptionAmbiguousTarget(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\niface eth0 inet dhcp\n")

	_, _, err := Apply(doc, SetOption{Key: eth0, Option: "mtu", Value: "1500"})
	var ae *AmbiguousInterfaceError
	require.True(t, errors.As(err, &ae))
}

func TestRemoveOption(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\tup cmd one\n\taddress 10.0.0.1\n\tup cmd two\n")

	doc2, changed, err := Apply(doc, RemoveOption{Key: eth0, Option: "up"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "iface eth0 inet static\n\taddress 10.0.0.1\n", Render(doc2))

	// Absent option on an existing stanza is "already absent", not an error.
	doc3, changed, err := Apply(doc2, RemoveOption{Key: eth0, Option: "up"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Render(doc2), Render(doc3))
}

func TestRemoveOptionTargetNotFound(t *testing.T) {
	doc := mustParse(t, "auto eth0\n")

	_, _, err := Apply(doc, RemoveOption{Key: eth0, Option: "mtu"})
	var nf *TargetNotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestRemoveIface(t *testing.T) {
	doc := mustParse(t, "# keep me\niface eth0 inet static\n\taddress 10.0.0.1\n\nauto eth0\n")

	doc2, changed, err := Apply(doc, RemoveIface{Key: eth0})
	require.NoError(t, err)
	assert.True(t, changed)
	// Attached comment block removed with the stanza; blank lines stay.
	assert.Equal(t, "\nauto eth0\n", Render(doc2))
}

func TestRemoveIfaceKeepsUnrelatedComments(t *testing.T) {
	doc := mustParse(t, "# file header\n\n# stanza comment\n# second line\niface eth0 inet static\n\niface eth1 inet dhcp\n")

	doc2, _, err := Apply(doc, RemoveIface{Key: eth0})
	require.NoError(t, err)
	assert.Equal(t, "# file header\n\n\niface eth1 inet dhcp\n", Render(doc2))
}

func TestRemoveIfaceTargetNotFound(t *testing.T) {
	doc := mustParse(t, "auto eth0\n")

	_, _, err := Apply(doc, RemoveIface{Key: eth0})
	var nf *TargetNotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestEnsureIfaceAppends(t *testing.T) {
	doc := mustParse(t, "auto eth0\niface eth0 inet dhcp\n")
	key := InterfaceKey{"eth1", FamilyInet}

	doc2, changed, err := Apply(doc, EnsureIface{Key: key, Method: "dhcp"})
	require.NoError(t, err)
	assert.True(t, changed)

	iface, err := doc2.Lookup(key)
	require.NoError(t, err)
	assert.Equal(t, "dhcp", iface.Method)

	// Re-applying is a no-op.
	doc3, changed, err := Apply(doc2, EnsureIface{Key: key, Method: "dhcp"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Render(doc2), Render(doc3))
}

func TestEnsureIfaceUpdatesMethodInPlace(t *testing.T) {
	doc := mustParse(t, "iface eth0 inet static\n\taddress 10.0.0.1\n\nauto eth0\n")

	doc2, changed, err := Apply(doc, EnsureIface{Key: eth0, Method: "dhcp"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "iface eth0 inet dhcp\n\taddress 10.0.0.1\n\nauto eth0\n", Render(doc2))
}

func TestEnsureIfaceEmptyDocument(t *testing.T) {
	doc := mustParse(t, "")

	doc2, changed, err := Apply(doc, EnsureIface{Key: eth0, Method: "loopback"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "iface eth0 inet loopback\n", Render(doc2))
}

// Applying any operation to its own result must report no further change.
func TestIdempotentApply(t *testing.T) {
	input := "auto eth0\niface eth0 inet static\n\taddress 10.0.0.1\n\tup cmd one\n\tup cmd one dup\n"
	ops := []Operation{
		SetOption{Key: eth0, Option: "address", Value: "10.9.9.9"},
		SetOption{Key: eth0, Option: "up", Value: "cmd two", AllMatches: true},
		SetOption{Key: eth0, Option: "mtu", Value: "1350"},
		RemoveOption{Key: eth0, Option: "up"},
		EnsureIface{Key: InterfaceKey{"eth7", FamilyInet6}, Method: "auto"},
		SetOption{Key: eth0, Option: "method", Value: "manual"},
	}
	for _, op := range ops {
		doc := mustParse(t, input)
		once, changed, err := Apply(doc, op)
		require.NoError(t, err)
		require.True(t, changed, "%+v", op)

		twice, changedAgain, err := Apply(once, op)
		require.NoError(t, err)
		assert.False(t, changedAgain, "%+v", op)
		assert.Equal(t, Render(once), Render(twice), "%+v", op)
	}
}

// Entries not touched by a mutation keep their relative order.
func TestOrderPreservation(t *testing.T) {
	input := "# one\nauto lo\niface lo inet loopback\n\nmapping eth0\n\tscript /bin/map\n\tmap HOME eth0-home\n\niface eth0 inet static\n\taddress 10.0.0.1\n\nsource /etc/network/interfaces.d/*\n"
	doc := mustParse(t, input)

	doc2, changed, err := Apply(doc, SetOption{Key: eth0, Option: "address", Value: "10.0.0.2"})
	require.NoError(t, err)
	require.True(t, changed)

	before := doc.Entries()
	after := doc2.Entries()
	require.Equal(t, len(before), len(after))
	for n := range before {
		if n == 6 { // the mutated iface stanza
			continue
		}
		assert.Same(t, before[n], after[n], "entry %d must be shared, not copied", n)
	}
}
