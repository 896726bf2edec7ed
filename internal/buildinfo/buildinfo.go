// Package buildinfo prints ldflags-injected build metadata at startup.
package buildinfo

import "fmt"

var (
	BuildVersion string
	BuildDate    string
	BuildCommit  string
)

// PrintBuildInfo writes the build metadata to stdout, "N/A" where unset.
func PrintBuildInfo() {
	fmt.Printf("Build version: %s\n", orNA(BuildVersion))
	fmt.Printf("Build date: %s\n", orNA(BuildDate))
	fmt.Printf("Build commit: %s\n", orNA(BuildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
