package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrInvalidScenario is returned by check when validation fails.
var ErrInvalidScenario = errors.New("invalid scenario")

var checkCmd = &cobra.Command{
	Use:   "check <scenario>",
	Short: "Validate a scenario without running it",
	Long:  "Load a scenario and report unknown handlers, receivers, actions and malformed steps.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScenario(args[0])
		if err != nil {
			return err
		}
		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		verr := s.Validate()
		fmt.Fprint(cmd.OutOrStdout(), renderer.Check(s, verr))
		if verr != nil {
			return fmt.Errorf("%w: %s", ErrInvalidScenario, s.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
