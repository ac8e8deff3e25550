package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/subpack/pkg/errors"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError includes the error code and the legacy integer code.
func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{
		"error":      err.Error(),
		"code":       string(errors.GetErrorCode(err)),
		"legacyCode": errors.LegacyCode(err),
	})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
