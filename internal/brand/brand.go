// Package brand centralizes the project's identity constants.
package brand

import "os"

// Identity.
const (
	Name            = "etcnet"
	BinaryName      = "etcnet"
	Description     = "structured editor for /etc/network/interfaces"
	ConfigEnvPrefix = "ETCNET"
)

// Default paths.
const (
	// DefaultInterfacesFile is the file edited when -file is not given.
	DefaultInterfacesFile = "/etc/network/interfaces"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// GetInterfacesFile returns the target file, checking the environment first.
// Priority: ETCNET_INTERFACES_FILE > DefaultInterfacesFile.
func GetInterfacesFile() string {
	if f := os.Getenv(ConfigEnvPrefix + "_INTERFACES_FILE"); f != "" {
		return f
	}
	return DefaultInterfacesFile
}
