package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/runner/mine"
)

func addMine(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mine [action]",
		Short: "List what the current actor has acted on (default: favorite)",
		Example: `
portal mine
portal mine like
portal --as u2 mine view
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: actionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := interaction.ActionFavorite
			if len(args) == 1 {
				a, err := interaction.ParseAction(args[0])
				if err != nil {
					return output.HandleError(err)
				}
				action = a
			}
			p, actorID, err := load()
			if err != nil {
				return output.HandleError(err)
			}

			m := mine.Mine{
				Persistence: p,
				Logger:      verbose.Logger(),
				ActorID:     actorID,
				Action:      action,
				JSON:        output.JSON,
			}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
