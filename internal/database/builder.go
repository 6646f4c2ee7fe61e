package database

import (
	sq "github.com/Masterminds/squirrel"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// StatementBuilder returns a squirrel builder using the placeholder style of
// the given driver.
func StatementBuilder(driver string) sq.StatementBuilderType {
	if driver == DriverMySQL {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
