package cmd

import (
	"grimm.is/etcnet/internal/ifacefile"
)

// RunSet sets one option on an interface and writes the file back.
func RunSet(file, name, option, value string, all, check, noBackup, showDiff bool) error {
	key, err := parseKey(name)
	if err != nil {
		return err
	}

	op := ifacefile.SetOption{
		Key:        key,
		Option:     option,
		Value:      value,
		AllMatches: all || ifacefile.IsRepeatable(option),
	}

	res, err := newEditor(file, check, noBackup).Apply([]ifacefile.Operation{op})
	if err != nil {
		return err
	}
	printResult(res, check, showDiff)
	return nil
}
