package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/portal/pkg/commands/options"
	"tableflip.dev/portal/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	actors  = &options.ActorOptions{}
	verbose = &options.VerboseOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "portal",
		Short: base.Wrap80("Record and inspect portal interactions, and browse the portal sections from the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddActorArgs(cmd, actors)
	options.AddVerboseArgs(cmd, verbose)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRecord(topLevel)
	addStats(topLevel)
	addMine(topLevel)
	addLog(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// load opens the configured slot and resolves the acting user.
func load() (store.Persistence, string, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	p, err := store.Load(cfg, store.WithLogger(verbose.Logger()))
	if err != nil {
		return nil, "", err
	}
	return p, actors.ActorID(cfg.Actor()), nil
}
