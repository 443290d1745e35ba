package machine

import (
	"fmt"

	"github.com/marcusklaas/lisp-parsers/lang/ir"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Closure is a user-defined function: a lambda literal or the partial
// application of one, reduced by the resolver and (for partial
// application) the evaluator's currying step to an arity and a finalized
// body. Body's Arguments at ScopeLevel 0 refer to Closure's own
// parameters; any Argument at a deeper ScopeLevel was already replaced by
// a literal ir.Value when the Closure was constructed (see
// replaceArgs in eval.go), so a fully-built Closure's body never reaches
// outside its own parameter list.
type Closure struct {
	ArityN int
	Body   ir.Node
}

var _ types.Function = (*Closure)(nil)

func (c *Closure) String() string { return fmt.Sprintf("#<function/%d>", c.ArityN) }
func (c *Closure) Type() string   { return "function" }
func (c *Closure) Arity() int     { return c.ArityN }
