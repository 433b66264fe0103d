// Package query builds parameterized SELECT statements over a projected
// table.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to the columns of one aliased table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  map[string]string
	columns []string
}

// NewProjectionMap creates a ProjectionMap for schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps column to the view field name. Columns keep their
// projection order in SELECT and RETURNING lists.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.fields[field] = column
	p.columns = append(p.columns, column)
	return p
}

// From returns the qualified table reference with its alias.
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the alias-qualified column mapped to field.
func (p *ProjectionMap) Column(field string) (string, bool) {
	col, ok := p.fields[field]
	if !ok {
		return "", false
	}
	return p.alias + "." + col, true
}

// Columns returns the alias-qualified select list.
func (p *ProjectionMap) Columns() string {
	qualified := make([]string, len(p.columns))
	for i, c := range p.columns {
		qualified[i] = p.alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

// Returning returns the unqualified column list for INSERT and UPDATE
// RETURNING clauses.
func (p *ProjectionMap) Returning() string {
	return strings.Join(p.columns, ", ")
}

// Fields reports whether every name is a projected field.
func (p *ProjectionMap) Fields(names ...string) bool {
	for _, n := range names {
		if _, ok := p.fields[n]; !ok {
			return false
		}
	}
	return true
}
