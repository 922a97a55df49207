package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/playkit/internal/harness"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Validate a scenario file",
	Long: `Validate a scenario file without running it.

Checks YAML syntax, rejects unknown fields, and verifies track types,
codecs, sample plans, and event timing.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sc, err := harness.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %q ok: %d tracks", sc.Name, len(sc.Tracks))
	if sc.Ticks > 0 {
		fmt.Printf(", %d ticks", sc.Ticks)
	}
	fmt.Println()
	return nil
}
