// Package table renders HTML tables from a declarative Grid of columns bound
// to a slice of rows or a pagination.Paginator.
package table
