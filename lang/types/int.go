package types

import (
	"math"
	"strconv"
)

// Int is the only numeric value type: a non-negative integer. The language
// has no negative numbers and no numeric tower, so Int is a thin wrapper
// around uint64 rather than an arbitrary-precision or signed type.
type Int uint64

func (i Int) String() string { return strconv.FormatUint(uint64(i), 10) }
func (i Int) Type() string   { return "int" }

// IsZero reports whether i is the zero value, the input tested by the
// zero? builtin.
func (i Int) IsZero() bool { return i == 0 }

// Add1 returns i+1, saturating at the maximum representable value instead
// of wrapping around to zero on overflow.
func (i Int) Add1() Int {
	if i == math.MaxUint64 {
		return i
	}
	return i + 1
}

// Sub1 returns i-1 and true, or (0, false) if i is already zero: the
// language has no negative integers, so decrementing zero is a dynamic
// error (SubZero) rather than a value.
func (i Int) Sub1() (Int, bool) {
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}
