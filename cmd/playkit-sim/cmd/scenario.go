package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/playkit/internal/harness"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Scenario management commands",
	Long:  `Commands for working with playback scenario files.`,
}

var scenarioDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the default scenario",
	Long: `Dump the built-in default scenario in YAML format.

The output is a complete scenario file and doubles as a template for
writing your own:

  playkit-sim scenario dump > scenario.yaml
  playkit-sim run scenario.yaml`,
	RunE: runScenarioDump,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioDumpCmd)
}

func runScenarioDump(cmd *cobra.Command, args []string) error {
	yamlData, err := yaml.Marshal(harness.DefaultScenario())
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}

	// Print header with documentation
	fmt.Println("# playkit-sim Scenario File")
	fmt.Println("# =========================")
	fmt.Println("#")
	fmt.Println("# This is the built-in default scenario.")
	fmt.Println("# All timestamps, offsets, and steps are in microseconds.")
	fmt.Println("#")
	fmt.Println("# Event actions:")
	fmt.Println("#   enable, start, stop, disable, reset, release,")
	fmt.Println("#   replace-stream, mark-final, reset-position,")
	fmt.Println("#   set-timeline, set-speed")
	fmt.Println("#")
	fmt.Println("# Unknown fields are rejected; validate with:")
	fmt.Println("#   playkit-sim validate scenario.yaml")
	fmt.Println("#")
	fmt.Println("")
	fmt.Print(string(yamlData))

	return nil
}
