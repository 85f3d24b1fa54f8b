package main

import (
	"gameaccount_store/internal/config" // Custom import path (Config)
	"gameaccount_store/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Run schema migration, then make sure the admin account exists
	conn := db.Migrate(cfg.DSN())
	db.SeedAdmin(conn, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
}
