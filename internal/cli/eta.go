package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tessro/printq/internal/timeutil"
)

var etaCopy bool

var etaCmd = &cobra.Command{
	Use:   "eta",
	Short: "Show when the queue completes",
	Long: `Show when everything queued is done. With an empty queue this is the
current print's finish time; with nothing running or queued there is no ETA.`,
	RunE: runETA,
}

func init() {
	etaCmd.Flags().BoolVar(&etaCopy, "copy", false, "Copy the completion time to the clipboard")
	rootCmd.AddCommand(etaCmd)
}

func runETA(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	now := s.Now()
	end, ok := s.Banner()

	if JSONOutput() {
		out := map[string]any{"completes": nil}
		if ok {
			out["completes"] = end.Format(time.RFC3339)
			out["in_minutes"] = timeutil.RemainingMinutes(end, now)
		}
		return printJSON(out)
	}

	if !ok {
		fmt.Println("Nothing printing or queued")
		return nil
	}

	label := timeutil.FormatRelative(end, now)
	fmt.Printf("Queue completes %s\n", okText(HumanTime(end, now)))

	if etaCopy {
		if err := clipboard.WriteAll(label); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		if Verbose() {
			fmt.Println("Copied to clipboard")
		}
	}
	return nil
}
