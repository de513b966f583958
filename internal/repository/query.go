package repository

import (
	"strconv"
	"strings"

	"github.com/jmehdipour/customer-lab/internal/model"
)

// SearchLimit caps every customers search.
const SearchLimit = 50

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildSearchQuery returns the bounded, id-ordered customers query for f with
// ? placeholders. Only present, non-empty filters become predicates.
func BuildSearchQuery(f model.Filters) (string, []any) {
	var (
		where []string
		args  []any
	)
	if model.Active(f.City) {
		where = append(where, "city = ?")
		args = append(args, *f.City)
	}
	if model.Active(f.Status) {
		where = append(where, "status = ?")
		args = append(args, *f.Status)
	}
	if model.Active(f.Name) {
		where = append(where, "full_name ILIKE ?")
		args = append(args, "%"+likeEscaper.Replace(*f.Name)+"%")
	}

	var sb strings.Builder
	sb.WriteString("SELECT id, full_name, city, status FROM customers")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY id LIMIT ")
	sb.WriteString(strconv.Itoa(SearchLimit))

	return sb.String(), args
}
