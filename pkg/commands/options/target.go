package options

import (
	"errors"
	"strings"

	"tableflip.dev/portal/pkg/interaction"
)

// ParseTarget reads "<type> <id>" positional arguments.
func ParseTarget(args []string) (interaction.TargetType, string, error) {
	if len(args) < 2 {
		return "", "", errors.New("expected <target-type> <target-id>")
	}
	t, err := interaction.ParseTargetType(args[0])
	if err != nil {
		return "", "", err
	}
	id := strings.TrimSpace(args[1])
	if id == "" {
		return "", "", interaction.ErrEmptyTarget
	}
	return t, id, nil
}
