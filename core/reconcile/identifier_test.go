package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Identifier
	}{
		{"Zero", 0, Auto},
		{"Negative", -5, Auto},
		{"Above MaxInt32", int64(2147483648), Auto},
		{"MaxInt32", int64(2147483647), Explicit(2147483647)},
		{"Numeric string", "42", Explicit(42)},
		{"Nil", nil, Auto},
		{"JSON float", float64(17), Explicit(17)},
		{"JSON float above range", float64(2147483648), Auto},
		{"Fractional float", 12.9, Explicit(12)},
		{"JSON number", json.Number("8"), Explicit(8)},
		{"Firestore document id", "Xk2fj39Dk", Auto},
		{"Leading digits", "15abc", Explicit(15)},
		{"Empty string", "", Auto},
		{"Timestamp id", float64(1700000000000), Auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestIdentifier_Key(t *testing.T) {
	key, ok := Explicit(7).Key()
	assert.True(t, ok)
	assert.Equal(t, 7, key)
	assert.Equal(t, "7", Explicit(7).String())

	_, ok = Auto.Key()
	assert.False(t, ok)
	assert.True(t, Auto.IsAuto())
	assert.Equal(t, "auto", Auto.String())
}
