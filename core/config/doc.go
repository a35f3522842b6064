// Package config provides configuration management for the order-menu service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, body limit, CORS origins
//   - Database: MySQL (or SQLite) connection and pool settings
//   - Storage: S3/MinIO credentials for bucket migrations
//   - Log: Logging level and format
//   - Migration: export file source and batch sizes
//   - Watch: change subscription polling interval
//
// Nested keys map to upper-case variables (database.host -> DATABASE_HOST). The
// variables of older deployments (DB_HOST, DB_PORT, DB_NAME, DB_USER,
// DB_PASSWORD, PORT) are honoured as fallbacks.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
