package cmd

import (
	"grimm.is/etcnet/internal/ifacefile"
)

// RunEnsure makes sure an iface stanza exists with the given method,
// appending a new stanza or rewriting the method of an existing one.
func RunEnsure(file, name, method string, check, noBackup, showDiff bool) error {
	key, err := parseKey(name)
	if err != nil {
		return err
	}

	op := ifacefile.EnsureIface{Key: key, Method: method}
	res, err := newEditor(file, check, noBackup).Apply([]ifacefile.Operation{op})
	if err != nil {
		return err
	}
	printResult(res, check, showDiff)
	return nil
}
