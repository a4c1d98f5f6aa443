package db

import "embed"

// migrationsFS holds the goose migrations for the remote store and the client cache.
//
//go:embed migrations
var migrationsFS embed.FS

const (
	ServerMigrations = "migrations/server"
	ClientMigrations = "migrations/client"
)
