package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// MetadataOptions
type MetadataOptions struct {
	Pairs []string
}

func AddMetadataArgs(cmd *cobra.Command, o *MetadataOptions) {
	cmd.Flags().StringArrayVarP(&o.Pairs, "meta", "m", nil,
		"Attach key=value metadata to the event; repeatable.")
}

// Metadata parses the pairs. No pairs gives a nil map.
func (o *MetadataOptions) Metadata() (map[string]string, error) {
	if len(o.Pairs) == 0 {
		return nil, nil
	}
	md := make(map[string]string, len(o.Pairs))
	for _, pair := range o.Pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid metadata %q, want key=value", pair)
		}
		md[k] = v
	}
	return md, nil
}
