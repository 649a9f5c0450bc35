// Package utils provides small helpers shared across the upshift codebase.
//
// # Identifier Quoting (identifier.go)
//
// Generated DDL quotes database names per dialect so that unusual names
// survive intact:
//
//	utils.DoubleQuoteIdentifier("my app") // "my app"  (PostgreSQL, SQLite)
//	utils.BacktickIdentifier("my app")    // `my app`  (MariaDB)
//
// Both double any embedded quote character, making the result safe for names
// taken verbatim from connection strings.
//
// # Pointer Helper (ptr.go)
//
// Ptr builds pointers for optional values, typically nullable columns:
//
//	rec.Description = utils.Ptr("add widgets table")
package utils
