// Package query holds reusable squirrel fragments shared by repositories.
package query

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// RelationCount describes a correlated COUNT(*) over a child table, projected as a column
// of the parent query. Where narrows the counted child rows, e.g. by answer.
type RelationCount struct {
	Alias      string
	Table      string
	ForeignKey string
	ParentKey  string
	Where      squirrel.Sqlizer
}

// Column renders the count as `(SELECT COUNT(*) FROM table WHERE table.fk = parent [AND where]) AS alias`.
// The sub-select keeps `?` placeholders so the outer builder numbers every argument once.
func (rc RelationCount) Column() squirrel.Sqlizer {
	sub := squirrel.Select("COUNT(*)").
		From(rc.Table).
		Where(fmt.Sprintf("%s.%s = %s", rc.Table, rc.ForeignKey, rc.ParentKey)).
		PlaceholderFormat(squirrel.Question)
	if rc.Where != nil {
		sub = sub.Where(rc.Where)
	}
	return squirrel.Alias(sub, rc.Alias)
}

// WithRelationCounts appends one count column per relation to base
func WithRelationCounts(base squirrel.SelectBuilder, counts ...RelationCount) squirrel.SelectBuilder {
	for _, count := range counts {
		base = base.Column(count.Column())
	}
	return base
}
