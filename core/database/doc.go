// Package database handles database connections, migrations and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (development and tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the database with error translation enabled, so unique index
// violations surface as gorm.ErrDuplicatedKey on every backend.
//
// # Migrations
//
// Migrate applies the embedded goose migrations on MySQL and falls back to
// GORM auto-migration on SQLite.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let commands verify that the expected
// tables exist before importing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	missing, err := database.MissingColumns(db, map[string][]string{"user": {"dummy_id"}})
package database
