package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderingResolve(t *testing.T) {
	ordering := Ordering{
		Whitelist: map[string]string{
			"title":            "bk.title",
			"publication_year": "bk.publication_year",
			"id":               "bk.id",
		},
		Default:  "title",
		TieBreak: "bk.id",
	}

	tests := []struct {
		name  string
		param string
		want  string
	}{
		{"empty falls back to default", "", "bk.title ASC, bk.id ASC"},
		{"known key ascending", "publication_year", "bk.publication_year ASC, bk.id ASC"},
		{"dash prefix descends", "-publication_year", "bk.publication_year DESC, bk.id ASC"},
		{"unknown key falls back to default ascending", "price", "bk.title ASC, bk.id ASC"},
		{"unknown key with dash still falls back ascending", "-price", "bk.title ASC, bk.id ASC"},
		{"tie-break column is not appended twice", "id", "bk.id ASC"},
		{"descending tie-break column", "-id", "bk.id DESC"},
		{"surrounding whitespace is trimmed", "  title ", "bk.title ASC, bk.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ordering.Resolve(tt.param))
		})
	}
}
