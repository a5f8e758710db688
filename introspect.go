package erd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/lucasefe/erd/generator"
	"github.com/lucasefe/erd/introspect"
	"github.com/lucasefe/erd/schema"
)

func (c *Config) introspectOptions() []introspect.Option {
	if c == nil {
		return nil
	}
	opts := []introspect.Option{
		introspect.WithSchemas(c.Schemas...),
		introspect.WithExcludeTables(c.ExcludeTables...),
		introspect.WithTypeMapper(c.TypeMapper),
	}
	if c.IncludeAllSchemas {
		opts = append(opts, introspect.WithAllSchemas())
	}
	return opts
}

// Introspect reads the database schema into a model.
func Introspect(db *sql.DB, config *Config) (*schema.Model, error) {
	m, err := introspect.Database(db, config.introspectOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect database: %w", err)
	}
	return m, nil
}

// GenerateFromConnection introspects db and renders the model in
// config.Format, which defaults to ER notation.
func GenerateFromConnection(db *sql.DB, config *Config) (string, error) {
	m, err := Introspect(db, config)
	if err != nil {
		return "", err
	}
	return generator.GenerateString(m, config.format(FormatNotation))
}

// GenerateFromConnectionString opens a PostgreSQL connection and calls
// GenerateFromConnection.
func GenerateFromConnectionString(connStr string, config *Config) (string, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return "", fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return "", fmt.Errorf("failed to ping database: %w", err)
	}

	return GenerateFromConnection(db, config)
}

// WriteToFile renders the introspected model of db into filename.
func WriteToFile(db *sql.DB, filename string, config *Config) error {
	content, err := GenerateFromConnection(db, config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// WriteToFileFromConnectionString is WriteToFile over a new connection.
func WriteToFileFromConnectionString(connStr, filename string, config *Config) error {
	content, err := GenerateFromConnectionString(connStr, config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}
