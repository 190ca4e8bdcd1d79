package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/commands/options"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/runner/record"
)

func addRecord(topLevel *cobra.Command) {
	mo := &options.MetadataOptions{}

	cmd := &cobra.Command{
		Use:   "record <action> <target-type> <target-id>",
		Short: "Record an interaction; like, favorite and follow toggle",
		Example: `
portal record like solution S1
portal record comment case C9 -m text="great write-up"
portal --as u2 record view app A1
`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeRecordArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := interaction.ParseAction(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			t, id, err := options.ParseTarget(args[1:])
			if err != nil {
				return output.HandleError(err)
			}
			md, err := mo.Metadata()
			if err != nil {
				return output.HandleError(err)
			}
			p, actorID, err := load()
			if err != nil {
				return output.HandleError(err)
			}

			r := record.Record{
				Persistence: p,
				Logger:      verbose.Logger(),
				ActorID:     actorID,
				Target:      t,
				ID:          id,
				Action:      action,
				Metadata:    md,
				JSON:        output.JSON,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMetadataArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
