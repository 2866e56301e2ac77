package cli

import (
	"encoding/json"
	"io"

	"github.com/agbru/fibfixed/pkg/models"
)

// WriteJSON encodes v as indented JSON followed by a newline.
//
// Parameters:
//   - out: The output writer.
//   - v: The value to encode, typically a models.Result or a slice of them.
//
// Returns:
//   - error: An error if encoding or writing fails.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DisplayJSONResults writes a single result as an object and several results
// as an array, so that single-mode output stays easy to consume with jq.
func DisplayJSONResults(out io.Writer, results []models.Result) error {
	if len(results) == 1 {
		return WriteJSON(out, results[0])
	}
	return WriteJSON(out, results)
}
