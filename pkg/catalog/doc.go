// Package catalog discovers migrations from a directory tree and orders them
// deterministically.
//
// A migrations root contains one subdirectory per migration. The subdirectory
// name is the migration's version: either the reserved baseline sentinel
// ("Initial") or a dotted-numeric version such as "1.0.1". Each subdirectory
// holds one or more .sql script files, executed in byte-lexicographic filename
// order, plus an optional description.txt whose first 500 characters become
// the migration's description.
//
// Layout:
//
//	db/migrations/
//	  Initial/
//	    1_create_schema.sql
//	    2_seed_data.sql
//	    description.txt
//	  1.0.1/
//	    1_alter_users.sql
//
// The catalog is rebuilt from the filesystem on every Load call; nothing is
// cached, so edits to the migrations directory are picked up live. Ordering
// is always baseline first, then ascending by parsed version. Version strings
// that fail to parse order as 0.0.0.
package catalog
