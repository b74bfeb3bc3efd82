package cli

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"github.com/spf13/cobra"
)

// validateImageName rejects names docker would refuse before any process is
// launched, e.g. upper-case repositories or stray whitespace.
func validateImageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("image name cannot be empty")
	}
	if _, err := reference.ParseNormalizedNamed(name); err != nil {
		return fmt.Errorf("invalid image name %q: %w", name, err)
	}
	return nil
}

// validateImageRef is validateImageName widened to what "docker run" also
// accepts: a full 64-hex image ID or a bare digest.
func validateImageRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("image name cannot be empty")
	}
	if _, err := reference.ParseAnyReference(ref); err != nil {
		return fmt.Errorf("invalid image name %q: %w", ref, err)
	}
	return nil
}

func validateNotEmpty(flag, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s cannot be empty", flag)
	}
	return nil
}

func markFlagsRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("marking %s required on %s: %v", name, cmd.Name(), err))
		}
	}
}
