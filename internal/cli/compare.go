package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxPack/internal/engine"
)

func (c *CLI) compareCommand() *cobra.Command {
	var opts settingsFlags

	cmd := &cobra.Command{
		Use:   "compare [file...]",
		Short: "Compare packing depth across orders and engines",
		Long: `Compare packs the same boxes with the current settings and with each
alternative insertion order and engine, then marks the shallowest result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			job, err := opts.resolve(cmd, c, args)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(job.Settings)
			st := startStage(loggerFromContext(ctx))
			results := engine.CompareScenarios(scenarios, job.Boxes)
			st.done("compared", "scenarios", len(scenarios), "boxes", len(job.Boxes))

			printComparison(out, results)
			for _, r := range results {
				if r.Err != nil {
					printError(out, "%s: %v", r.Scenario.Name, r.Err)
				}
			}

			best := engine.Best(results)
			if best < 0 {
				return fmt.Errorf("every scenario failed")
			}
			printInfo(out, "Best: %s (depth %d)", results[best].Scenario.Name, results[best].Depth)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
