package types

// Bool is the boolean value type, written #t and #f in source.
type Bool bool

// The two boolean values, exported so the environment can bind #t and #f
// without constructing new values.
const (
	True  = Bool(true)
	False = Bool(false)
)

func (b Bool) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (b Bool) Type() string { return "bool" }
