package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	var (
		actorID    string
		targetType string
		targetID   string
		action     string
		limit      int
		showID     bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the raw interaction log",
		Example: `
portal log
portal log --type app --id A1
portal log --actor u1 --action like -n 20
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log.Log{
				Logger:   verbose.Logger(),
				ActorID:  actorID,
				TargetID: targetID,
				Limit:    limit,
				ShowID:   showID,
				JSON:     output.JSON,
			}
			if targetType != "" {
				t, err := interaction.ParseTargetType(targetType)
				if err != nil {
					return output.HandleError(err)
				}
				l.TargetType = t
			}
			if action != "" {
				a, err := interaction.ParseAction(action)
				if err != nil {
					return output.HandleError(err)
				}
				l.Action = a
			}
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			l.Persistence = p
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&actorID, "actor", "", "Only events by this actor.")
	cmd.Flags().StringVar(&targetType, "type", "", "Only events on this target type.")
	cmd.Flags().StringVar(&targetID, "id", "", "Only events on this target id.")
	cmd.Flags().StringVar(&action, "action", "", "Only events of this action.")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the newest n events.")
	cmd.Flags().BoolVar(&showID, "ids", false, "Show event ids.")

	topLevel.AddCommand(cmd)
}
