package cmd

import (
	"fmt"

	"grimm.is/etcnet/internal/plan"
)

// RunApply compiles an HCL plan file and applies its operations to the
// interfaces file in one pass.
func RunApply(file, planFile string, check, noBackup, showDiff bool) error {
	ops, err := plan.LoadHCL(planFile)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("plan %s contains no iface blocks", planFile)
	}

	res, err := newEditor(file, check, noBackup).Apply(ops)
	if err != nil {
		return err
	}
	printResult(res, check, showDiff)
	return nil
}
