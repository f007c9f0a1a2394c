package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text together with positional args,
// handing out $n placeholders in order.
type sqlWriter struct {
	buf  strings.Builder
	args []any
	next int
}

func newSQLWriter() *sqlWriter {
	return &sqlWriter{next: 1}
}

func (w *sqlWriter) raw(s string) {
	w.buf.WriteString(s)
}

func (w *sqlWriter) arg(value any) {
	w.buf.WriteString("$" + strconv.Itoa(w.next))
	w.args = append(w.args, value)
	w.next++
}

// expr rewrites ? markers in raw SQL into positional placeholders.
func (w *sqlWriter) expr(sql string, args []any) {
	if len(args) == 0 {
		w.buf.WriteString(sql)
		return
	}

	used := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && used < len(args) {
			w.arg(args[used])
			used++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

type Condition interface {
	writeTo(w *sqlWriter)
}

type binaryCondition struct {
	column string
	op     string
	value  any
}

func (c binaryCondition) writeTo(w *sqlWriter) {
	w.raw(c.column)
	w.raw(" ")
	w.raw(c.op)
	w.raw(" ")
	w.arg(c.value)
}

func Eq(column string, value any) Condition {
	return binaryCondition{column: column, op: "=", value: value}
}

func Lt(column string, value any) Condition {
	return binaryCondition{column: column, op: "<", value: value}
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) writeTo(w *sqlWriter) {
	if len(c.values) == 0 {
		w.raw("1=0")
		return
	}

	w.raw(c.column)
	w.raw(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.raw(", ")
		}
		w.arg(v)
	}
	w.raw(")")
}

type exprCondition struct {
	sql  string
	args []any
}

func Expr(sql string, args ...any) Condition {
	return exprCondition{sql: sql, args: args}
}

func (c exprCondition) writeTo(w *sqlWriter) {
	w.expr(c.sql, c.args)
}

func writeWhere(w *sqlWriter, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c.writeTo(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := newSQLWriter()
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	writeWhere(w, b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT " + strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.raw(" OFFSET " + strconv.Itoa(b.offset))
	}

	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, typically an
// ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := newSQLWriter()
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.arg(value)
		}
		w.raw(")")
	}

	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete without conditions is not allowed")
	}

	w := newSQLWriter()
	w.raw("DELETE FROM ")
	w.raw(b.table)
	writeWhere(w, b.where)

	return w.buf.String(), w.args, nil
}
