// Package psqlbuilder wraps squirrel with the PostgreSQL placeholder format
// so repositories never have to repeat PlaceholderFormat(squirrel.Dollar).
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT statement with $n placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT statement with $n placeholders.
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update starts an UPDATE statement with $n placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE statement with $n placeholders.
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
