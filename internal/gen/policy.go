package gen

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/dekarrin/pte/entry"
	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/internal/signature"
	"github.com/dekarrin/pte/lines"
)

// PolicyKind is the way a generated entry point decides how many lines of
// input to read.
type PolicyKind int

const (
	// PolicyBlank reads until a blank line or the end of input.
	PolicyBlank PolicyKind = iota

	// PolicyFixed reads a fixed number of lines.
	PolicyFixed

	// PolicyInput reads a header line and takes the number of lines that
	// follow it from one of the header's tokens.
	PolicyInput

	// PolicyParam reads one line, binds parameters up to and including a named
	// integer parameter, and then reads as many more lines as that parameter's
	// value.
	PolicyParam

	// PolicyAll reads until the end of input.
	PolicyAll
)

// Policy is a row-count policy as given in config or on the command line.
// The zero value is PolicyBlank.
type Policy struct {
	Kind PolicyKind

	// N is the line count for PolicyFixed and the 0-based header token index
	// for PolicyInput.
	N int

	// Param is the parameter name for PolicyParam.
	Param string
}

// ParsePolicy parses the textual form of a row policy:
//
//	""/"blank"  read until a blank line
//	"all"       read until end of input
//	"line"      read one line
//	"4"         read 4 lines
//	"in0"       read a header line, then as many lines as its token 0 says
//	"n"         read one line, then as many lines as parameter n says
//
// Keywords win over parameter names, so a parameter called "all" cannot be
// used as a row count.
func ParsePolicy(s string) (Policy, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "", "blank":
		return Policy{Kind: PolicyBlank}, nil
	case "all":
		return Policy{Kind: PolicyAll}, nil
	case "line":
		return Policy{Kind: PolicyFixed, N: 1}, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Policy{}, pteerrors.Userf("Row count %d is negative", n)
		}
		return Policy{Kind: PolicyFixed, N: n}, nil
	}

	if strings.HasPrefix(s, "in") {
		if idx, err := strconv.Atoi(s[2:]); err == nil && idx >= 0 {
			return Policy{Kind: PolicyInput, N: idx}, nil
		}
	}

	if token.IsIdentifier(s) {
		return Policy{Kind: PolicyParam, Param: s}, nil
	}

	return Policy{}, pteerrors.Userf("%q is not a row policy; use a number, inN, a parameter name, blank, line, or all", s)
}

func (p Policy) String() string {
	switch p.Kind {
	case PolicyBlank:
		return "blank"
	case PolicyAll:
		return "all"
	case PolicyFixed:
		return strconv.Itoa(p.N)
	case PolicyInput:
		return fmt.Sprintf("in%d", p.N)
	case PolicyParam:
		return p.Param
	default:
		return fmt.Sprintf("Policy(%d)", int(p.Kind))
	}
}

// Rows returns the runtime policy used for the first read. For PolicyParam
// this is a single line; the rest is read once the parameter is bound.
func (p Policy) Rows() entry.Rows {
	switch p.Kind {
	case PolicyFixed:
		return entry.Fixed(p.N)
	case PolicyInput:
		return entry.Counted(p.N)
	case PolicyParam:
		return entry.Fixed(1)
	case PolicyAll:
		return entry.All()
	default:
		return entry.UntilBlank()
	}
}

// rowsExpr is the Go expression building p.Rows() in generated code.
func (p Policy) rowsExpr() string {
	switch p.Kind {
	case PolicyFixed:
		return fmt.Sprintf("entry.Fixed(%d)", p.N)
	case PolicyInput:
		return fmt.Sprintf("entry.Counted(%d)", p.N)
	case PolicyParam:
		return "entry.Fixed(1)"
	case PolicyAll:
		return "entry.All()"
	default:
		return "entry.UntilBlank()"
	}
}

// Validate checks that p can be used with sig. A PolicyParam must name an
// integer scalar parameter of sig.
func (p Policy) Validate(sig signature.Signature) error {
	if p.Kind != PolicyParam {
		return nil
	}

	param, idx := sig.Param(p.Param)
	if idx < 0 {
		return pteerrors.Userf("Row count parameter %s is not a parameter of %s", p.Param, sig.Name)
	}
	if param.Shape != lines.ShapeScalar || !lines.IsInteger(param.Elem) {
		return pteerrors.Userf("Row count parameter %s must be a single integer, not %s", p.Param, param.Type())
	}
	return nil
}
