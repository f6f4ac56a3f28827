package storage

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestStringSliceRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: decoding an encoded slice restores it exactly
	properties.Property("slice round trip is lossless", prop.ForAll(
		func(values []string) bool {
			decoded := DecodeStringSlice(EncodeStringSlice(values))
			if len(values) == 0 {
				return len(decoded) == 0
			}
			return reflect.DeepEqual(decoded, values)
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}

func TestStringMapRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: decoding an encoded map restores it exactly
	properties.Property("map round trip is lossless", prop.ForAll(
		func(raw map[string]string) bool {
			values := make(map[string]interface{}, len(raw))
			for k, v := range raw {
				values[k] = v
			}
			decoded := DecodeStringMap(EncodeStringMap(values))
			return reflect.DeepEqual(decoded, values)
		},
		gen.MapOf(gen.Identifier(), gen.AnyString()),
	))

	properties.TestingRun(t)
}

func TestDecodeIsTotalProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: arbitrary input never produces a nil collection
	properties.Property("slice decode never yields nil", prop.ForAll(
		func(data string) bool {
			return DecodeStringSlice(data) != nil
		},
		gen.AnyString(),
	))

	properties.Property("map decode never yields nil", prop.ForAll(
		func(data string) bool {
			return DecodeStringMap(data) != nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
