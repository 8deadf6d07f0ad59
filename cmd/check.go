package cmd

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"grimm.is/etcnet/internal/ifacefile"
)

// RunCheck parses the file and verifies that rendering reproduces it byte
// for byte. It flags duplicate declarations, which block automated edits.
func RunCheck(file string, verbose bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	input := string(data)

	doc, err := ifacefile.Parse(input)
	if err != nil {
		return fmt.Errorf("file invalid: %w", err)
	}

	Printer.Printf("File valid!\n")
	Printer.Printf("Entries: %d\n", doc.Len())
	Printer.Printf("Interfaces: %d\n", len(doc.Interfaces()))

	if ambiguous := doc.AmbiguousKeys(); len(ambiguous) > 0 {
		for _, k := range ambiguous {
			Printer.Printf("Duplicate declaration: %s\n", k)
		}
		return fmt.Errorf("%d interface(s) declared more than once", len(ambiguous))
	}

	rendered := ifacefile.Render(doc)
	if rendered != input {
		Printer.Println("Rendering does not reproduce the input:")
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(input),
			B:        difflib.SplitLines(rendered),
			FromFile: file,
			ToFile:   file + " (re-rendered)",
			Context:  3,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		fmt.Print(text)
		return fmt.Errorf("round trip differs")
	}
	Printer.Println("Round trip: byte-exact")

	if verbose {
		Printer.Println()
		printInterfaces(doc)
	}
	return nil
}
