package storage

import "encoding/json"

const (
	emptyJSONArray  = "[]"
	emptyJSONObject = "{}"
)

// EncodeStringSlice serializes a list column value to JSON text.
// A nil slice encodes as the empty array literal.
func EncodeStringSlice(values []string) string {
	if values == nil {
		return emptyJSONArray
	}

	data, err := json.Marshal(values)
	if err != nil {
		return emptyJSONArray
	}
	return string(data)
}

// DecodeStringSlice deserializes a list column value from JSON text.
// Empty, blank or malformed text decodes to an empty slice; decoding
// never returns an error.
func DecodeStringSlice(data string) []string {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

// EncodeStringMap serializes a map column value to JSON text.
// A nil map encodes as the empty object literal.
func EncodeStringMap(values map[string]interface{}) string {
	if values == nil {
		return emptyJSONObject
	}

	data, err := json.Marshal(values)
	if err != nil {
		return emptyJSONObject
	}
	return string(data)
}

// DecodeStringMap deserializes a map column value from JSON text.
// Empty, blank or malformed text decodes to an empty map; decoding
// never returns an error.
func DecodeStringMap(data string) map[string]interface{} {
	var values map[string]interface{}
	if err := json.Unmarshal([]byte(data), &values); err != nil || values == nil {
		return map[string]interface{}{}
	}
	return values
}
