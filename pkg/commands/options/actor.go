package options

import (
	"strings"

	"github.com/spf13/cobra"
)

// ActorOptions
type ActorOptions struct {
	As string
}

func AddActorArgs(cmd *cobra.Command, o *ActorOptions) {
	cmd.PersistentFlags().StringVar(&o.As, "as", "",
		"Act as this actor id instead of the configured one.")
}

// ActorID returns the --as override, or fallback when it is unset.
func (o *ActorOptions) ActorID(fallback string) string {
	if as := strings.TrimSpace(o.As); as != "" {
		return as
	}
	return fallback
}
