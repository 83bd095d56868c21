package shared

import (
	"encoding/json"
	"errors"
)

// ErrUnsupportedJSONColumn is returned when a JSON column holds a non-text value
var ErrUnsupportedJSONColumn = errors.New("failed to scan JSON column: unsupported type")

// ScanJSON decodes a JSON/JSONB column value into dest.
// NULL and empty values leave dest untouched.
func ScanJSON(value any, dest any) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return ErrUnsupportedJSONColumn
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
