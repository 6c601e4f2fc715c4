package cmd

import (
	"runtime"

	"github.com/huangsam/rvss/core"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rvss.",
	Long: `Display version information including build details.

Shows:
- Release version, commit and build timestamp
- Go runtime version
- Built-in scoring systems and their vector prefixes

Plugin systems are not listed here; use 'rvss systems --plugin <file>' for those.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("rvss CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("  Systems:\n")
		for _, sys := range core.NewDefaultRegistry().Systems() {
			info := sys.Info()
			suffix := ""
			if info.Legacy {
				suffix = " (prefix optional)"
			}
			cmd.Printf("    %-7s %s%s\n", sys.Name(), sys.Prefix(), suffix)
		}
	},
}
