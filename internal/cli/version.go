package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case JSONOutput():
			fmt.Print(goversion.FuncWithOutput(versionShort, Version, Commit, BuildDate, "json"))
		case Verbose():
			fmt.Print(goversion.FuncWithOutput(versionShort, Version, Commit, BuildDate, "yaml"))
		default:
			fmt.Printf("printq %s\n", Version)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Print just the version number")
	rootCmd.AddCommand(versionCmd)
}
