package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStringSlice(t *testing.T) {
	t.Run("nil slice encodes as empty array", func(t *testing.T) {
		assert.Equal(t, "[]", EncodeStringSlice(nil))
	})

	t.Run("empty slice encodes as empty array", func(t *testing.T) {
		assert.Equal(t, "[]", EncodeStringSlice([]string{}))
	})

	t.Run("values encode as JSON array", func(t *testing.T) {
		assert.Equal(t, `["air filter","spark plugs"]`, EncodeStringSlice([]string{"air filter", "spark plugs"}))
	})

	t.Run("special characters are escaped", func(t *testing.T) {
		encoded := EncodeStringSlice([]string{`brake "pads"`})
		assert.Equal(t, `["brake \"pads\""]`, encoded)
	})
}

func TestDecodeStringSlice(t *testing.T) {
	t.Run("valid array decodes exactly", func(t *testing.T) {
		values := DecodeStringSlice(`["oil","coolant"]`)
		require.Len(t, values, 2)
		assert.Equal(t, []string{"oil", "coolant"}, values)
	})

	tests := []struct {
		name string
		data string
	}{
		{"empty string", ""},
		{"blank string", "   "},
		{"not json", "not json"},
		{"truncated array", `["oil"`},
		{"wrong type", `{"a":1}`},
		{"null literal", "null"},
		{"mixed element types", `["oil", 42]`},
	}

	for _, tt := range tests {
		t.Run(tt.name+" decodes to empty slice", func(t *testing.T) {
			values := DecodeStringSlice(tt.data)
			require.NotNil(t, values)
			assert.Empty(t, values)
		})
	}
}

func TestEncodeStringMap(t *testing.T) {
	t.Run("nil map encodes as empty object", func(t *testing.T) {
		assert.Equal(t, "{}", EncodeStringMap(nil))
	})

	t.Run("empty map encodes as empty object", func(t *testing.T) {
		assert.Equal(t, "{}", EncodeStringMap(map[string]interface{}{}))
	})

	t.Run("values encode as JSON object", func(t *testing.T) {
		encoded := EncodeStringMap(map[string]interface{}{"mileage": float64(42000)})
		assert.Equal(t, `{"mileage":42000}`, encoded)
	})

	t.Run("unmarshalable values fall back to empty object", func(t *testing.T) {
		encoded := EncodeStringMap(map[string]interface{}{"ch": make(chan int)})
		assert.Equal(t, "{}", encoded)
	})
}

func TestDecodeStringMap(t *testing.T) {
	t.Run("valid object decodes exactly", func(t *testing.T) {
		values := DecodeStringMap(`{"engine":0.91,"source":"obd"}`)
		require.Len(t, values, 2)
		assert.Equal(t, 0.91, values["engine"])
		assert.Equal(t, "obd", values["source"])
	})

	t.Run("nested structures decode", func(t *testing.T) {
		values := DecodeStringMap(`{"codes":["P0300","P0420"]}`)
		require.Contains(t, values, "codes")
		assert.Equal(t, []interface{}{"P0300", "P0420"}, values["codes"])
	})

	tests := []struct {
		name string
		data string
	}{
		{"empty string", ""},
		{"blank string", "   "},
		{"not json", "not json"},
		{"truncated object", `{"engine":`},
		{"wrong type", `["a"]`},
		{"null literal", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" decodes to empty map", func(t *testing.T) {
			values := DecodeStringMap(tt.data)
			require.NotNil(t, values)
			assert.Empty(t, values)
		})
	}
}

func TestConverterRoundTrip(t *testing.T) {
	t.Run("slice survives encode then decode", func(t *testing.T) {
		original := []string{"front left tire", "wiper blades", ""}
		assert.Equal(t, original, DecodeStringSlice(EncodeStringSlice(original)))
	})

	t.Run("map survives encode then decode", func(t *testing.T) {
		original := map[string]interface{}{
			"overall": 0.87,
			"note":    "post-service check",
			"flagged": true,
		}
		assert.Equal(t, original, DecodeStringMap(EncodeStringMap(original)))
	})
}
