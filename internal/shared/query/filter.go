// Package query turns sparse, optional filter fields into a single predicate
// that repositories can compile to SQL (goqu) or evaluate in memory.
package query

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operator is the comparison applied by a Condition.
type Operator int

const (
	OpEq Operator = iota
	OpContainsFold
	OpLessThan
	OpNotTrue
)

// Mode decides how the active conditions of a Filter are combined.
type Mode int

const (
	MatchAll Mode = iota // AND
	MatchAny             // OR
)

// Condition compares one column against a value. Column names are qualified
// with the table alias used by the repository query ("b.isbn", "l.customer").
type Condition struct {
	Column string
	Op     Operator
	Value  any
	active bool
}

// Active reports whether the condition takes part in the predicate. Conditions
// built from a blank value are inactive.
func (c Condition) Active() bool {
	return c.active
}

// Eq matches rows whose column equals value. Blank values deactivate it.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: normalize(value), active: !isBlank(value)}
}

// ContainsFold matches rows whose column contains value, case-insensitively.
func ContainsFold(column, value string) Condition {
	value = strings.TrimSpace(value)
	return Condition{Column: column, Op: OpContainsFold, Value: value, active: value != ""}
}

// LessThan matches rows whose column is strictly lower than value.
func LessThan(column string, value any) Condition {
	return Condition{Column: column, Op: OpLessThan, Value: normalize(value), active: !isBlank(value)}
}

// NotTrue matches rows whose boolean column is false or NULL.
func NotTrue(column string) Condition {
	return Condition{Column: column, Op: OpNotTrue, active: true}
}

// Filter is a set of conditions combined with AND or OR.
type Filter struct {
	mode       Mode
	conditions []Condition
}

// All combines the active conditions with AND.
func All(conditions ...Condition) Filter {
	return newFilter(MatchAll, conditions)
}

// Any combines the active conditions with OR.
func Any(conditions ...Condition) Filter {
	return newFilter(MatchAny, conditions)
}

// None is the filter that matches every row.
func None() Filter {
	return Filter{}
}

func newFilter(mode Mode, conditions []Condition) Filter {
	active := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if c.active {
			active = append(active, c)
		}
	}
	return Filter{mode: mode, conditions: active}
}

func (f Filter) Mode() Mode {
	return f.mode
}

// Conditions returns the active conditions only.
func (f Filter) Conditions() []Condition {
	return f.conditions
}

// IsEmpty is true when no condition is active: the filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.conditions) == 0
}

// Row exposes column values of one record to Matches.
type Row map[string]any

// Matches evaluates the filter against a single row, with the same semantics
// the compiled SQL has.
func (f Filter) Matches(row Row) bool {
	if f.IsEmpty() {
		return true
	}

	for _, c := range f.conditions {
		ok := c.matches(row[c.Column])
		if f.mode == MatchAny && ok {
			return true
		}
		if f.mode == MatchAll && !ok {
			return false
		}
	}

	return f.mode == MatchAll
}

func (c Condition) matches(v any) bool {
	switch c.Op {
	case OpEq:
		return normalize(v) == c.Value
	case OpContainsFold:
		s, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(c.Value.(string)))
	case OpLessThan:
		return lessThan(normalize(v), c.Value)
	case OpNotTrue:
		switch b := v.(type) {
		case bool:
			return !b
		case *bool:
			return b == nil || !*b
		case nil:
			return true
		}
		return false
	}
	return false
}

func lessThan(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	case int:
		bv, ok := b.(int)
		return ok && av < bv
	case int64:
		bv, ok := b.(int64)
		return ok && av < bv
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	}
	return false
}

func normalize(v any) any {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case *string:
		if t == nil {
			return nil
		}
		return strings.TrimSpace(*t)
	case time.Time:
		return t.UTC()
	}
	return v
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case *string:
		return t == nil || strings.TrimSpace(*t) == ""
	case uuid.UUID:
		return t == uuid.Nil
	case time.Time:
		return t.IsZero()
	}
	return false
}
