package cmd

import (
	"grimm.is/etcnet/internal/ifacefile"
)

// RunRemove removes an option from an interface, or the whole stanza when no
// option is given.
func RunRemove(file, name, option string, check, noBackup, showDiff bool) error {
	key, err := parseKey(name)
	if err != nil {
		return err
	}

	var op ifacefile.Operation
	if option == "" {
		op = ifacefile.RemoveIface{Key: key}
	} else {
		op = ifacefile.RemoveOption{Key: key, Option: option}
	}

	res, err := newEditor(file, check, noBackup).Apply([]ifacefile.Operation{op})
	if err != nil {
		return err
	}
	printResult(res, check, showDiff)
	return nil
}
