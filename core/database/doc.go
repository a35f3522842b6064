// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections (and SQLite for local runs and
// tests) from the application's configuration.
//
// # Connect
//
// Connect builds the DSN through the go-sql-driver Config (raw credentials, I/O timeouts), bounds the
// pool (MaxOpenConns, 10 by default; extra callers wait for a free connection) and
// pings the server before returning. Duplicate-key driver errors are translated to
// gorm.ErrDuplicatedKey.
//
// # Schema Inspection
//
// GetTableColumns and HasColumn read column definitions (SHOW COLUMNS on MySQL,
// PRAGMA table_info on SQLite). The schema feature uses them to decide whether the
// country column still needs to be added.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "orders")
package database
