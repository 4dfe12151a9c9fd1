package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/evq/internal/paths"
	"github.com/tessro/evq/internal/scenario"
)

var runContinueOnError bool

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Replay a scenario and print its trace",
	Long: `Replay a scenario file against a fresh handler queue.

The argument is a path to a .toml, .yaml or .yml file, or the name of a
scenario in ~/.evq/scenarios. The command fails when any step errors or
misses an expectation.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	runner, err := scenario.NewRunner(s, scenario.Options{
		ContinueOnError: runContinueOnError || globalConfig.ContinueOnError(),
	})
	if err != nil {
		return fmt.Errorf("invalid scenario %s: %w", s.Name, err)
	}

	trace, runErr := runner.Run()
	fmt.Fprint(cmd.OutOrStdout(), renderer.Trace(trace))
	return runErr
}

func loadScenario(arg string) (*scenario.Scenario, error) {
	path, err := paths.ResolveScenario(arg)
	if err != nil {
		return nil, fmt.Errorf("find scenario: %w", err)
	}
	return scenario.Load(path)
}

func init() {
	runCmd.Flags().BoolVar(&runContinueOnError, "continue-on-error", false, "keep running steps after a failure")
	rootCmd.AddCommand(runCmd)
}
