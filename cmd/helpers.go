package cmd

import (
	"fmt"
	"strings"

	"grimm.is/etcnet/internal/editor"
	"grimm.is/etcnet/internal/i18n"
	"grimm.is/etcnet/internal/ifacefile"
)

var Printer = i18n.NewCLIPrinter()

// parseKey turns "eth0" or "eth0/inet6" into an interface key. The family
// defaults to inet.
func parseKey(s string) (ifacefile.InterfaceKey, error) {
	name, family, found := strings.Cut(s, "/")
	if name == "" {
		return ifacefile.InterfaceKey{}, fmt.Errorf("interface name must not be empty")
	}
	if !found || family == "" {
		return ifacefile.InterfaceKey{Name: name, Family: ifacefile.FamilyInet}, nil
	}
	return ifacefile.InterfaceKey{Name: name, Family: ifacefile.Family(family)}, nil
}

func newEditor(file string, check, noBackup bool) *editor.Editor {
	e := editor.New(file)
	e.CheckMode = check
	e.Backup = !noBackup
	return e
}

// printResult reports an apply outcome to the user.
func printResult(res *editor.Result, check, showDiff bool) {
	if !res.Changed {
		Printer.Println("No changes.")
		return
	}
	for _, c := range res.Changes {
		Printer.Println(c.String())
	}
	if showDiff || check {
		fmt.Print(res.Diff)
	}
	if check {
		Printer.Println("Check mode: changes not written.")
		return
	}
	if res.BackupPath != "" {
		Printer.Printf("Backup written to %s\n", res.BackupPath)
	}
}
