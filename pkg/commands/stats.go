package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/commands/options"
	"tableflip.dev/portal/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	watch := false

	cmd := &cobra.Command{
		Use:   "stats <target-type> <target-id>",
		Short: "Show views, unique visitors and the other counters of a target",
		Example: `
portal stats solution S1
portal stats app A1 --watch
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeTargetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, id, err := options.ParseTarget(args)
			if err != nil {
				return output.HandleError(err)
			}
			p, actorID, err := load()
			if err != nil {
				return output.HandleError(err)
			}

			s := stats.Stats{
				Persistence: p,
				Logger:      verbose.Logger(),
				ActorID:     actorID,
				Target:      t,
				ID:          id,
				Watch:       watch,
				JSON:        output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Reprint whenever the interaction log changes.")

	topLevel.AddCommand(cmd)
}
