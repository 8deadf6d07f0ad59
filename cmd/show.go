package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"grimm.is/etcnet/internal/editor"
	"grimm.is/etcnet/internal/ifacefile"
)

// RunShow lists the interfaces declared in the file, or the options of one
// interface when a name is given.
func RunShow(file, name string) error {
	doc, err := editor.Load(file)
	if err != nil {
		return err
	}

	if name == "" {
		printInterfaces(doc)
		return nil
	}

	key, err := parseKey(name)
	if err != nil {
		return err
	}
	iface, err := doc.Lookup(key)
	if err != nil {
		return err
	}

	Printer.Printf("iface %s %s %s\n", iface.Name, iface.Family, iface.Method)
	for _, opt := range iface.Options() {
		Printer.Printf("    %s %s\n", opt.Key, opt.Value)
	}
	return nil
}

func printInterfaces(doc *ifacefile.Document) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	Printer.Fprintln(w, "INTERFACE\tFAMILY\tMETHOD\tADDRESS\tOPTIONS")
	for _, key := range doc.Interfaces() {
		iface, err := doc.Lookup(key)
		if err != nil {
			// Duplicate declaration, flagged below.
			continue
		}
		address := "-"
		if vals, _ := doc.OptionValues(key, "address"); len(vals) > 0 {
			address = vals[0]
		}
		Printer.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			iface.Name, iface.Family, iface.Method, address, len(iface.Options()))
	}
	w.Flush()

	if ambiguous := doc.AmbiguousKeys(); len(ambiguous) > 0 {
		var names []string
		for _, k := range ambiguous {
			names = append(names, k.String())
		}
		fmt.Fprintf(os.Stderr, "warning: declared more than once: %s\n", strings.Join(names, ", "))
	}
}
