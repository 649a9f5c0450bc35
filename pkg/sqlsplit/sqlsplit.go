// Package sqlsplit breaks raw SQL scripts into individually executable
// statements.
//
// Migration scripts routinely contain semicolons that are not statement
// terminators: inside string literals, inside line comments, and inside
// PostgreSQL dollar-quoted bodies (function definitions, DO blocks). Naively
// splitting on every semicolon corrupts such scripts, so this package provides
// a scanner that understands those constructs.
//
// Key features:
//   - Quoted strings ('...' and "...") with doubled-quote escapes
//   - Line comments (-- to end of line)
//   - Dollar-quoted blocks ($$...$$ and $tag$...$tag$) copied verbatim
//   - Statements trimmed, blank statements dropped, terminators kept
//
// Basic usage:
//
//	stmts := sqlsplit.Split(script)
//	for _, stmt := range stmts {
//		if err := db.Exec(stmt).Error; err != nil {
//			return err
//		}
//	}
//
// Engines without procedural blocks can use SplitSimple, which splits on every
// semicolon. Split is a correct superset of SplitSimple for any script that
// SplitSimple handles correctly.
package sqlsplit

import "strings"

// scan mode for the splitter state machine. Modes are mutually exclusive.
type mode int

const (
	modePlain mode = iota
	modeLineComment
	modeQuoted
	modeDollarQuoted
)

// Split scans script left to right and returns the contained statements in
// order. Each returned statement is trimmed of surrounding whitespace, is
// non-blank, and retains its terminating semicolon. Trailing text without a
// terminator is returned as a final statement.
//
// The scanner tracks four mutually exclusive modes: plain text, line comment,
// quoted string, and dollar-quoted block. Semicolons terminate statements only
// in plain mode; everything else is copied into the current statement
// verbatim.
//
// Example:
//
//	stmts := sqlsplit.Split(`SELECT ';'; SELECT 2;`)
//	// stmts == []string{`SELECT ';';`, `SELECT 2;`}
func Split(script string) []string {
	var (
		statements []string
		buf        strings.Builder
		state      = modePlain
		quote      byte   // opening quote character while in modeQuoted
		dollarTag  string // full opening tag (e.g. "$tag$") while in modeDollarQuoted
	)

	flush := func() {
		if stmt, ok := trimStatement(buf.String()); ok {
			statements = append(statements, stmt)
		}
		buf.Reset()
	}

	for i := 0; i < len(script); i++ {
		ch := script[i]

		switch state {
		case modeLineComment:
			buf.WriteByte(ch)
			if ch == '\n' {
				state = modePlain
			}

		case modeQuoted:
			buf.WriteByte(ch)
			if ch != quote {
				continue
			}
			// A doubled delimiter is an escaped quote; consume both and
			// stay inside the string.
			if i+1 < len(script) && script[i+1] == quote {
				buf.WriteByte(script[i+1])
				i++
				continue
			}
			state = modePlain

		case modeDollarQuoted:
			if ch == '$' {
				if tag, ok := dollarTagAt(script, i); ok && tag == dollarTag {
					buf.WriteString(tag)
					i += len(tag) - 1
					state = modePlain
					continue
				}
			}
			buf.WriteByte(ch)

		default: // modePlain
			switch {
			case ch == '-' && i+1 < len(script) && script[i+1] == '-':
				buf.WriteString("--")
				i++
				state = modeLineComment

			case ch == '\'' || ch == '"':
				buf.WriteByte(ch)
				quote = ch
				state = modeQuoted

			case ch == '$':
				tag, ok := dollarTagAt(script, i)
				if !ok {
					// No closing dollar sign ahead; plain text.
					buf.WriteByte(ch)
					continue
				}
				buf.WriteString(tag)
				i += len(tag) - 1
				dollarTag = tag
				state = modeDollarQuoted

			case ch == ';':
				buf.WriteByte(ch)
				flush()

			default:
				buf.WriteByte(ch)
			}
		}
	}

	flush()

	return statements
}

// SplitSimple splits script on every semicolon with no awareness of strings,
// comments, or dollar quoting. Statements are trimmed, blank statements are
// dropped, and each kept statement retains its semicolon. Trailing text
// without a terminator is returned as a final statement.
//
// This is the splitting strategy for engines whose dialect has no procedural
// blocks with embedded delimiters. Scripts that put semicolons inside string
// literals need Split instead.
func SplitSimple(script string) []string {
	var statements []string

	for {
		idx := strings.IndexByte(script, ';')
		if idx < 0 {
			break
		}

		if stmt, ok := trimStatement(script[:idx+1]); ok {
			statements = append(statements, stmt)
		}
		script = script[idx+1:]
	}

	if rest, ok := trimStatement(script); ok {
		statements = append(statements, rest)
	}

	return statements
}

// trimStatement trims surrounding whitespace and reports whether the result
// contains anything beyond its terminating semicolon. Statements reduced to a
// bare terminator are blank.
func trimStatement(text string) (string, bool) {
	stmt := strings.TrimSpace(text)
	if strings.TrimSpace(strings.TrimSuffix(stmt, ";")) == "" {
		return "", false
	}

	return stmt, true
}

// dollarTagAt reads a candidate dollar-quote tag starting at script[i], which
// must be a '$'. The tag is the inclusive substring up to and including the
// next '$'. Returns false when no further '$' exists in the input.
func dollarTagAt(script string, i int) (string, bool) {
	next := strings.IndexByte(script[i+1:], '$')
	if next < 0 {
		return "", false
	}

	return script[i : i+next+2], true
}
