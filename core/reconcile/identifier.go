package reconcile

import (
	"math"
	"strconv"

	"order-menu/core/utils"
)

// Identifier is a normalized record key: either Explicit(n) with 0 < n <= MaxInt32,
// or Auto. The zero value is Auto.
type Identifier struct {
	key int32
}

// Auto asks the store to assign the key.
var Auto = Identifier{}

// Explicit returns an explicit identifier for n, or Auto if n is not a usable key.
func Explicit(n int64) Identifier {
	if n <= 0 || n > math.MaxInt32 {
		return Auto
	}
	return Identifier{key: int32(n)}
}

// Normalize validates and coerces a client-supplied identifier.
// It never fails: anything that does not parse to a positive signed 32-bit
// integer becomes Auto.
func Normalize(raw any) Identifier {
	n, ok := utils.ParseLeadingInt(raw)
	if !ok {
		return Auto
	}
	return Explicit(n)
}

// IsAuto reports whether the store should assign the key.
func (id Identifier) IsAuto() bool {
	return id.key == 0
}

// Key returns the explicit key. ok is false for Auto.
func (id Identifier) Key() (key int, ok bool) {
	if id.key == 0 {
		return 0, false
	}
	return int(id.key), true
}

func (id Identifier) String() string {
	if id.key == 0 {
		return "auto"
	}
	return strconv.Itoa(int(id.key))
}
