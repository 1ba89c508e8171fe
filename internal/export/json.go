package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piwi3910/ShaperCut/internal/engine"
)

// WriteJSON writes the computed paths of plan as a JSON object keyed by
// path ID.
func WriteJSON(w io.Writer, plan engine.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan.Computed()); err != nil {
		return fmt.Errorf("failed to encode computed paths: %w", err)
	}
	return nil
}
