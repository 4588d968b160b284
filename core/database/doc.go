// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database with
// connection pooling and an initial ping, so a dead database surfaces at
// startup rather than on the first sync run.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. Feature loaders
// use them after migration to verify that their tables and columns actually
// exist before the first synchronization touches them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "circuit_costs", []string{"mrc", "nrc"})
package database
