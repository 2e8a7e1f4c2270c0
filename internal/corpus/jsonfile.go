package corpus

import (
	"bytes"
	"encoding/json"
)

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// marshalJSON encodes without HTML escaping so code like a < b stays readable on disk
func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any, indent string) error {
	data, err := marshalJSON(v, indent)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
