package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/portal/pkg/actor"
	"tableflip.dev/portal/pkg/interaction"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(portal completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(portal completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func actionNames() []string {
	var out []string
	for _, a := range interaction.AllActions() {
		out = append(out, string(a))
	}
	return out
}

func targetTypeNames() []string {
	var out []string
	for _, t := range interaction.AllTargetTypes() {
		out = append(out, string(t))
	}
	return out
}

// targetIDs offers the ids already seen in the log for t.
func targetIDs(cmd *cobra.Command, t interaction.TargetType) []string {
	p, actorID, err := load()
	if err != nil {
		return nil
	}
	s := interaction.Open(cmd.Context(), actor.Static(actorID), interaction.WithPersister(p))
	defer func() { _ = s.Close() }()
	return s.Targets(t)
}

func completeTargetArgs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return targetTypeNames(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		t, err := interaction.ParseTargetType(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return targetIDs(cmd, t), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeRecordArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return actionNames(), cobra.ShellCompDirectiveNoFileComp
	}
	return completeTargetArgs(cmd, args[1:], toComplete)
}
