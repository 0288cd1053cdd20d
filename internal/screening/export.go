package screening

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/cognicare/internal/model"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteExport encodes an export in the given format.
func WriteExport(w io.Writer, export model.UserExport, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
	return nil
}
