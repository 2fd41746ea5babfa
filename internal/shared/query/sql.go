package query

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
)

const DialectPostgres = "postgres"

// Dialect is the goqu builder every repository starts from. Statements are
// prepared so values travel as pgx arguments, never inlined.
func Dialect() goqu.DialectWrapper {
	return goqu.Dialect(DialectPostgres)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Expression compiles the filter to a goqu expression. The boolean is false
// when the filter is empty and no WHERE clause should be emitted.
func (f Filter) Expression() (exp.Expression, bool) {
	if f.IsEmpty() {
		return nil, false
	}

	exprs := make([]exp.Expression, 0, len(f.conditions))
	for _, c := range f.conditions {
		exprs = append(exprs, c.expression())
	}

	if f.mode == MatchAny {
		return goqu.Or(exprs...), true
	}
	return goqu.And(exprs...), true
}

// Apply adds the filter as WHERE clause to ds.
func (f Filter) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if expr, ok := f.Expression(); ok {
		return ds.Where(expr)
	}
	return ds
}

// Paginate adds LIMIT/OFFSET for req to ds.
func Paginate(ds *goqu.SelectDataset, req PageRequest) *goqu.SelectDataset {
	return ds.Limit(req.Limit()).Offset(req.Offset())
}

func (c Condition) expression() exp.Expression {
	col := goqu.I(c.Column)
	switch c.Op {
	case OpContainsFold:
		return col.ILike("%" + likeEscaper.Replace(c.Value.(string)) + "%")
	case OpLessThan:
		return col.Lt(c.Value)
	case OpNotTrue:
		return col.IsNotTrue()
	default:
		return col.Eq(c.Value)
	}
}
