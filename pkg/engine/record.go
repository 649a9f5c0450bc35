package engine

import "time"

// VersionTable is the name of the version-tracking table every gateway
// maintains in the target database.
const VersionTable = "schema_versions"

// Record is one row of the version-tracking table: a migration that has been
// executed against the target database. Rows are append-only; nothing ever
// updates or deletes them.
//
// The table deliberately carries no uniqueness constraint on version: the
// orchestrator's version checks are the only duplicate guard.
type Record struct {
	// ID is the surrogate key, assigned by the database.
	ID uint `gorm:"primaryKey"`

	// Version matches the version of the migration that ran.
	Version string `gorm:"not null"`

	// ExecutedAt is the UTC time the migration was recorded, set after its
	// scripts completed (not when execution started).
	ExecutedAt time.Time `gorm:"not null"`

	// Description is a snapshot of the migration's description at execution
	// time, not a live reference. Migrations without one store NULL.
	Description *string
}

// TableName maps Record onto the version-tracking table.
func (Record) TableName() string {
	return VersionTable
}
