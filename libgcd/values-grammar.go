package libgcd

import (
	"math"

	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// ValuesExpr is a comma separated list of integers and inclusive ranges, e.g. "1..4, 9, -6".
type ValuesExpr struct {
	Items []*ValuesItem `parser:"(@@ (\",\" @@)*)?"`
}

type ValuesItem struct {
	From *IntLit `parser:"@@"`
	To   *IntLit `parser:"( \"..\" @@ )?"`
}

type IntLit struct {
	Neg bool   `parser:"@\"-\"?"`
	Mag uint64 `parser:"@Int"`
}

func (lit *IntLit) Value() (int, error) {
	if lit.Mag > math.MaxInt {
		return 0, errors.Wrapf(gcdgraph.ErrBadValuesExpr, "%d is out of range", lit.Mag)
	}
	if lit.Neg {
		return -int(lit.Mag), nil
	}
	return int(lit.Mag), nil
}

var sValuesLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Punct", Pattern: `[-,]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var parseValuesExpr = participle.MustBuild[ValuesExpr](
	participle.Lexer(sValuesLexer),
)

// ParseValues parses a values expression into the integers it denotes, in order.
// Ranges are inclusive and must not descend; the total count may not exceed gcdgraph.MaxLength.
func ParseValues(expr string) ([]int, error) {
	Vexpr, err := parseValuesExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(gcdgraph.ErrBadValuesExpr, err.Error())
	}

	var values []int
	for _, item := range Vexpr.Items {
		from, err := item.From.Value()
		if err != nil {
			return nil, err
		}
		to := from
		if item.To != nil {
			if to, err = item.To.Value(); err != nil {
				return nil, err
			}
			if to < from {
				return nil, errors.Wrapf(gcdgraph.ErrBadRange, "%d..%d", from, to)
			}
		}
		if uint64(to-from) >= uint64(gcdgraph.MaxLength-len(values)) {
			return nil, errors.Wrapf(gcdgraph.ErrInvalidLength, "values expression exceeds %d values", gcdgraph.MaxLength)
		}
		for v := from; ; v++ {
			values = append(values, v)
			if v == to {
				break
			}
		}
	}
	return values, nil
}
