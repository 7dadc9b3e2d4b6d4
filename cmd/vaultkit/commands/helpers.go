package commands

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJSON writes v as indented JSON, matching the --json output shape of
// every command.
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
