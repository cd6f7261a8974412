// Package config provides configuration management for the backup manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Primary: MongoDB connection for the authoritative document store
//   - Replica: MySQL connection for the relational replica
//   - Storage: S3/MinIO credentials for sync-report archiving (optional)
//   - Backup: scheduler interval and sync run timeout
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
