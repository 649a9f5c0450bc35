package utils

import "strings"

// DoubleQuoteIdentifier quotes an identifier for dialects that quote with
// double quotes (PostgreSQL, SQLite), doubling any embedded quote characters.
//
// Examples:
//   - `app` -> `"app"`
//   - `my db` -> `"my db"`
//   - `we"ird` -> `"we""ird"`
//
// The name is always quoted as a whole; a dot is part of the identifier, not
// a qualifier separator. Database names come straight from connection
// strings, so nothing here tries to split or interpret them.
func DoubleQuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// BacktickIdentifier quotes an identifier for dialects that quote with
// backticks (MariaDB, MySQL), doubling any embedded backticks.
//
// Examples:
//   - "app" -> "`app`"
//   - "my db" -> "`my db`"
//   - "we`ird" -> "`we``ird`"
func BacktickIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
