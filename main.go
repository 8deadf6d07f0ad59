package main

import (
	"flag"
	"os"

	"grimm.is/etcnet/cmd"
	"grimm.is/etcnet/internal/brand"
	"grimm.is/etcnet/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

// editFlags are the options shared by every modifying subcommand.
type editFlags struct {
	file     *string
	check    *bool
	noBackup *bool
	diff     *bool
}

func newEditFlags(fs *flag.FlagSet) editFlags {
	f := editFlags{}
	f.file = fs.String("file", brand.GetInterfacesFile(), "Interfaces file to edit")
	fs.StringVar(f.file, "f", brand.GetInterfacesFile(), "Interfaces file (short)")

	f.check = fs.Bool("check", false, "Report changes without writing them")
	fs.BoolVar(f.check, "n", false, "Check mode (short)")

	f.noBackup = fs.Bool("no-backup", false, "Skip the timestamped backup before writing")

	f.diff = fs.Bool("diff", false, "Print a unified diff of the change")
	fs.BoolVar(f.diff, "d", false, "Print a unified diff (short)")
	return f
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "show":
		showFlags := flag.NewFlagSet("show", flag.ExitOnError)
		file := showFlags.String("file", brand.GetInterfacesFile(), "Interfaces file to read")
		showFlags.StringVar(file, "f", brand.GetInterfacesFile(), "Interfaces file (short)")
		showFlags.Parse(os.Args[2:])

		var name string
		if len(showFlags.Args()) > 0 {
			name = showFlags.Arg(0)
		}
		if err := cmd.RunShow(*file, name); err != nil {
			printer.Fprintf(os.Stderr, "Show failed: %v\n", err)
			os.Exit(1)
		}

	case "set":
		setFlags := flag.NewFlagSet("set", flag.ExitOnError)
		f := newEditFlags(setFlags)
		all := setFlags.Bool("all", false, "Append alongside existing values instead of replacing")
		setFlags.BoolVar(all, "a", false, "Append alongside existing values (short)")
		setFlags.Parse(os.Args[2:])

		if len(setFlags.Args()) != 3 {
			printer.Println("Usage: " + brand.BinaryName + " set [options] <iface>[/<family>] <option> <value>")
			os.Exit(1)
		}
		if err := cmd.RunSet(*f.file, setFlags.Arg(0), setFlags.Arg(1), setFlags.Arg(2),
			*all, *f.check, *f.noBackup, *f.diff); err != nil {
			printer.Fprintf(os.Stderr, "Set failed: %v\n", err)
			os.Exit(1)
		}

	case "ensure":
		ensureFlags := flag.NewFlagSet("ensure", flag.ExitOnError)
		f := newEditFlags(ensureFlags)
		ensureFlags.Parse(os.Args[2:])

		if len(ensureFlags.Args()) != 2 {
			printer.Println("Usage: " + brand.BinaryName + " ensure [options] <iface>[/<family>] <method>")
			os.Exit(1)
		}
		if err := cmd.RunEnsure(*f.file, ensureFlags.Arg(0), ensureFlags.Arg(1),
			*f.check, *f.noBackup, *f.diff); err != nil {
			printer.Fprintf(os.Stderr, "Ensure failed: %v\n", err)
			os.Exit(1)
		}

	case "remove":
		removeFlags := flag.NewFlagSet("remove", flag.ExitOnError)
		f := newEditFlags(removeFlags)
		removeFlags.Parse(os.Args[2:])

		if len(removeFlags.Args()) < 1 || len(removeFlags.Args()) > 2 {
			printer.Println("Usage: " + brand.BinaryName + " remove [options] <iface>[/<family>] [option]")
			os.Exit(1)
		}
		option := ""
		if len(removeFlags.Args()) == 2 {
			option = removeFlags.Arg(1)
		}
		if err := cmd.RunRemove(*f.file, removeFlags.Arg(0), option,
			*f.check, *f.noBackup, *f.diff); err != nil {
			printer.Fprintf(os.Stderr, "Remove failed: %v\n", err)
			os.Exit(1)
		}

	case "apply":
		applyFlags := flag.NewFlagSet("apply", flag.ExitOnError)
		f := newEditFlags(applyFlags)
		applyFlags.Parse(os.Args[2:])

		if len(applyFlags.Args()) != 1 {
			printer.Println("Usage: " + brand.BinaryName + " apply [options] <plan.hcl>")
			os.Exit(1)
		}
		if err := cmd.RunApply(*f.file, applyFlags.Arg(0),
			*f.check, *f.noBackup, *f.diff); err != nil {
			printer.Fprintf(os.Stderr, "Apply failed: %v\n", err)
			os.Exit(1)
		}

	case "batch":
		batchFlags := flag.NewFlagSet("batch", flag.ExitOnError)
		f := newEditFlags(batchFlags)
		batchFlags.Parse(os.Args[2:])

		if len(batchFlags.Args()) != 1 {
			printer.Println("Usage: " + brand.BinaryName + " batch [options] <ops.yml>")
			os.Exit(1)
		}
		if err := cmd.RunBatch(*f.file, batchFlags.Arg(0),
			*f.check, *f.noBackup, *f.diff); err != nil {
			printer.Fprintf(os.Stderr, "Batch failed: %v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Verbose output")
		checkFlags.BoolVar(verbose, "v", false, "Verbose output (short)")
		checkFlags.Parse(os.Args[2:])

		file := brand.GetInterfacesFile()
		if len(checkFlags.Args()) > 0 {
			file = checkFlags.Arg(0)
		}
		if err := cmd.RunCheck(file, *verbose); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "version":
		printer.Printf("%s version %s\n", brand.Name, brand.Version)
		printer.Printf("Build: %s\n", brand.BuildTime)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  show      List interfaces, or the options of one interface
            Options: --file (-f) <path>
  set       Set an option on an interface
            Options: --all (-a), --check (-n), --diff (-d), --no-backup
  ensure    Ensure an iface stanza exists with a method
  remove    Remove an option, or a whole stanza
  apply     Apply an HCL plan file
  batch     Apply a YAML ops file
  check     Validate a file and verify its round trip
            Options: --verbose (-v)
  version   Print version info

All modifying commands accept --file (-f) <path>, --check (-n),
--diff (-d) and --no-backup. The default file is %s
(override with %s_INTERFACES_FILE).

Examples:
  %s show
  %s show eth0/inet6
  %s set eth0 address 10.0.0.9
  %s set -n -d eth0 mtu 1350
  %s ensure eth1 dhcp
  %s remove eth1
  %s apply -d rollout.hcl
  %s check -v /etc/network/interfaces
`,
		brand.Name, brand.Description,
		brand.BinaryName,
		brand.DefaultInterfacesFile, brand.ConfigEnvPrefix,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
