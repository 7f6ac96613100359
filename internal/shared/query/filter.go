// Package query implements the filter, ordering and pagination layer shared by
// the author and book endpoints. Each domain declares a static table of Rules
// (query parameter -> column, lookup, value kind); Parse walks that table over
// the raw query string and produces typed Conditions the repositories render
// into SQL. Parameters not present in a table are ignored.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Lookup is the comparison applied to a column.
type Lookup int

const (
	Exact Lookup = iota
	IContains
	IStartsWith
	GT
	GTE
	LT
	LTE
	In
)

// Kind is how a raw query-string value is coerced.
type Kind int

const (
	Text Kind = iota
	Int
	IntList
)

// Rule binds one recognized query parameter to a column and lookup.
// Column may be any SQL expression, including an aggregate subquery.
type Rule struct {
	Param  string
	Column string
	Lookup Lookup
	Kind   Kind
}

// Condition is one parsed, typed filter ready to be rendered into SQL.
type Condition struct {
	Column string
	Lookup Lookup
	Text   string
	Int    int64
	Ints   []int64
}

// FieldErrors maps a field or parameter name to its error messages. It
// marshals directly into the wire format for validation failures.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return strings.Join(parts, ", ")
}

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

const invalidNumberMsg = "Enter a number."

// Parse walks the rule table over the raw query values. Typed parameters that
// fail coercion produce a FieldErrors; unrecognized parameters never do.
// An In rule whose list is empty or has no valid entries still yields a
// Condition (with an empty Ints slice) so that it renders as an impossible
// predicate rather than silently matching everything.
func Parse(values url.Values, rules []Rule) ([]Condition, error) {
	var conds []Condition
	errs := FieldErrors{}

	for _, rule := range rules {
		raw := values.Get(rule.Param)
		if raw == "" {
			// A present-but-empty list parameter still filters: it must
			// match nothing. Every other empty parameter is treated as
			// absent.
			if rule.Kind != IntList || !values.Has(rule.Param) {
				continue
			}
		}

		cond := Condition{Column: rule.Column, Lookup: rule.Lookup}

		switch rule.Kind {
		case Text:
			cond.Text = raw
		case Int:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				errs.Add(rule.Param, invalidNumberMsg)
				continue
			}
			cond.Int = n
		case IntList:
			cond.Ints = parseIntList(raw)
		}

		conds = append(conds, cond)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return conds, nil
}

// parseIntList splits a comma-separated list, dropping entries that do not
// parse. An empty result is deliberate: it must match nothing, not everything.
func parseIntList(raw string) []int64 {
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

// Builder composes parsed conditions into a single AND-joined SQL clause with
// positional arguments, starting at a caller-chosen position so repositories
// can mix in their own arguments.
type Builder struct {
	fragments []string
	args      []interface{}
	argPos    int
}

func NewBuilder(startArg int) *Builder {
	return &Builder{argPos: startArg}
}

// Add appends one condition, AND-joined with everything added before it.
func (b *Builder) Add(c Condition) {
	frag, args := b.render(c)
	b.fragments = append(b.fragments, frag)
	b.args = append(b.args, args...)
}

// AddAll appends every condition in order.
func (b *Builder) AddAll(conds []Condition) {
	for _, c := range conds {
		b.Add(c)
	}
}

// AddOr appends a parenthesized OR-group of conditions, AND-joined with the
// rest of the clause. Used for cross-field search.
func (b *Builder) AddOr(conds ...Condition) {
	if len(conds) == 0 {
		return
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		frag, args := b.render(c)
		parts = append(parts, frag)
		b.args = append(b.args, args...)
	}
	b.fragments = append(b.fragments, "("+strings.Join(parts, " OR ")+")")
}

func (b *Builder) render(c Condition) (string, []interface{}) {
	var value interface{} = c.Int
	if c.Text != "" {
		value = c.Text
	}

	switch c.Lookup {
	case Exact:
		return fmt.Sprintf("%s = $%d", c.Column, b.take()), []interface{}{value}
	case IContains:
		return fmt.Sprintf("%s ILIKE $%d", c.Column, b.take()), []interface{}{"%" + c.Text + "%"}
	case IStartsWith:
		return fmt.Sprintf("%s ILIKE $%d", c.Column, b.take()), []interface{}{c.Text + "%"}
	case GT:
		return fmt.Sprintf("%s > $%d", c.Column, b.take()), []interface{}{c.Int}
	case GTE:
		return fmt.Sprintf("%s >= $%d", c.Column, b.take()), []interface{}{c.Int}
	case LT:
		return fmt.Sprintf("%s < $%d", c.Column, b.take()), []interface{}{c.Int}
	case LTE:
		return fmt.Sprintf("%s <= $%d", c.Column, b.take()), []interface{}{c.Int}
	case In:
		if len(c.Ints) == 0 {
			// Empty or all-invalid list: match nothing.
			return "FALSE", nil
		}
		return fmt.Sprintf("%s = ANY($%d)", c.Column, b.take()), []interface{}{c.Ints}
	}
	return "TRUE", nil
}

// take claims the current positional-argument index and advances it.
func (b *Builder) take() int {
	pos := b.argPos
	b.argPos++
	return pos
}

// Clause returns the AND-joined SQL fragment (without the WHERE keyword) and
// its arguments. An empty builder yields "TRUE" so callers can always embed
// the result after WHERE.
func (b *Builder) Clause() (string, []interface{}) {
	if len(b.fragments) == 0 {
		return "TRUE", nil
	}
	return strings.Join(b.fragments, " AND "), b.args
}

// NextArg reports the next free positional-argument index, for repositories
// appending LIMIT/OFFSET after the filter clause.
func (b *Builder) NextArg() int {
	return b.argPos
}
