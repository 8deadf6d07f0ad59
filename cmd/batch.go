package cmd

import (
	"fmt"

	"grimm.is/etcnet/internal/plan"
)

// RunBatch applies a YAML ops file, a flat list of set/remove requests, to
// the interfaces file in one pass.
func RunBatch(file, opsFile string, check, noBackup, showDiff bool) error {
	ops, err := plan.LoadOps(opsFile)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("ops file %s is empty", opsFile)
	}

	res, err := newEditor(file, check, noBackup).Apply(ops)
	if err != nil {
		return err
	}
	printResult(res, check, showDiff)
	return nil
}
