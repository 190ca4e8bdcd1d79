package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
portal ui
PORTAL_TUI_LOG=/tmp/portal.log portal ui --as u2
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, actorID, err := load()
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, ActorID: actorID}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
