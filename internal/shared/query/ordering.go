package query

import "strings"

// Ordering validates a requested sort key against a whitelist and resolves it
// to an ORDER BY clause. An unknown key falls back to the default instead of
// failing the request. A deterministic tie-break on TieBreak (normally the id
// column) is always appended so pagination is reproducible.
type Ordering struct {
	// Whitelist maps the externally visible sort key to a SQL column or
	// select-list alias.
	Whitelist map[string]string
	// Default is the sort key used when the request carries none, or an
	// unrecognized one. Must be a Whitelist key.
	Default string
	// TieBreak is the column appended (ascending) to break ties.
	TieBreak string
}

// Resolve turns the raw ordering parameter (optionally "-" prefixed for
// descending) into an ORDER BY clause body.
func (o Ordering) Resolve(param string) string {
	key := strings.TrimSpace(param)
	desc := strings.HasPrefix(key, "-")
	if desc {
		key = key[1:]
	}

	column, ok := o.Whitelist[key]
	if !ok {
		column = o.Whitelist[o.Default]
		desc = false
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	clause := column + " " + direction
	if o.TieBreak != "" && column != o.TieBreak {
		clause += ", " + o.TieBreak + " ASC"
	}
	return clause
}
