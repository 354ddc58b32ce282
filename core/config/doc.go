// Package config provides configuration management for the importer.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded through godotenv). Defaults live next to each field
// in a `default` struct tag.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP API settings (port, API key)
//   - API: upstream endpoint and request timeout
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials for the raw payload archive
//   - Log: Logging level and format
//   - Import: page defaults, failure policy, transactions, schedule
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
