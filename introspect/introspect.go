// Package introspect builds ER models from PostgreSQL databases.
// It reads tables, columns, primary keys and foreign keys from
// information_schema and maps them onto entities and relationships.
//
// Basic usage:
//
//	model, err := introspect.Database(db,
//	    introspect.WithSchemas("public", "auth"),
//	    introspect.WithExcludeTables("migrations"),
//	)
//
// With custom type mapping:
//
//	mapper := introspect.NewPostgreSQLTypeMapper(map[string]string{
//	    "citext": "text",
//	})
//	model, err := introspect.Database(db, introspect.WithTypeMapper(mapper))
package introspect

import (
	"database/sql"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/lucasefe/erd/schema"

	_ "github.com/lib/pq"
)

// log returns the package logger from the currently configured backend.
func log() commonlog.Logger {
	return commonlog.GetLogger("erd.introspect")
}

// Database introspects a PostgreSQL database and returns its ER model.
// Use options to customize which schemas and tables to include.
func Database(db *sql.DB, opts ...Option) (*schema.Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	schemaNames := o.schemas
	if o.includeAllSchemas {
		schemas, err := getAllSchemas(db)
		if err != nil {
			return nil, fmt.Errorf("failed to get schemas: %w", err)
		}
		schemaNames = schemas
	}

	tables, err := introspectSchemas(db, schemaNames, o.typeMapper)
	if err != nil {
		return nil, err
	}

	result, names := buildModel(tables)

	if len(o.excludeTables) > 0 {
		exclude := make([]string, len(o.excludeTables))
		for i, table := range o.excludeTables {
			exclude[i] = names.lookup(table)
		}
		// A junction table is excluded through the relationship it became.
		result = schema.FilterRelationships(schema.FilterEntities(result, exclude), exclude)
	}

	log().Infof("introspected %d tables into %d entities and %d relationships",
		len(tables), len(result.Entities), len(result.Relationships))
	return result, nil
}

// FromConnectionString connects to a PostgreSQL database and introspects it.
// This is a convenience function that handles connection management.
func FromConnectionString(connStr string, opts ...Option) (*schema.Model, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return Database(db, opts...)
}

// table is the raw catalog view of one base table.
type table struct {
	schema      string
	name        string
	columns     []column
	foreignKeys []foreignKey
}

type column struct {
	name       string
	dataType   string
	primaryKey bool
}

// foreignKey is one constraint; composite keys list several columns.
type foreignKey struct {
	name     string
	columns  []string
	toSchema string
	toTable  string
}

func introspectSchemas(db *sql.DB, schemaNames []string, mapper TypeMapper) ([]table, error) {
	if len(schemaNames) == 0 {
		schemaNames = []string{"public"}
	}

	var result []table
	for _, schemaName := range schemaNames {
		log().Debugf("reading schema %s", schemaName)
		names, err := getTables(db, schemaName)
		if err != nil {
			return nil, fmt.Errorf("failed to get tables for schema %s: %w", schemaName, err)
		}

		for _, name := range names {
			t := table{schema: schemaName, name: name}

			t.columns, err = getColumns(db, schemaName, name, mapper)
			if err != nil {
				return nil, fmt.Errorf("failed to get columns for table %s.%s: %w", schemaName, name, err)
			}

			primaryKeys, err := getPrimaryKeys(db, schemaName, name)
			if err != nil {
				return nil, fmt.Errorf("failed to get primary keys for table %s.%s: %w", schemaName, name, err)
			}
			for i := range t.columns {
				t.columns[i].primaryKey = primaryKeys[t.columns[i].name]
			}

			t.foreignKeys, err = getForeignKeys(db, schemaName, name)
			if err != nil {
				return nil, fmt.Errorf("failed to get foreign keys for table %s.%s: %w", schemaName, name, err)
			}

			result = append(result, t)
		}
	}

	return result, nil
}

func getAllSchemas(db *sql.DB) ([]string, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
			AND schema_name NOT LIKE 'pg_temp_%'
			AND schema_name NOT LIKE 'pg_toast_temp_%'
		ORDER BY schema_name
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var schemaName string
		if err := rows.Scan(&schemaName); err != nil {
			return nil, err
		}
		schemas = append(schemas, schemaName)
	}

	return schemas, rows.Err()
}

func getTables(db *sql.DB, schemaName string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := db.Query(query, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

func getColumns(db *sql.DB, schemaName, tableName string, mapper TypeMapper) ([]column, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			COALESCE(c.udt_name, c.data_type) AS udt_name
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := db.Query(query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []column
	for rows.Next() {
		var col column
		var ct ColumnType

		err := rows.Scan(
			&col.name,
			&ct.DataType,
			&ct.CharMaxLength,
			&ct.NumericPrecision,
			&ct.NumericScale,
			&ct.UDTName,
		)
		if err != nil {
			return nil, err
		}

		col.dataType = mapper.MapType(ct)
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func getPrimaryKeys(db *sql.DB, schemaName, tableName string) (map[string]bool, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.table_constraints tc
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND kcu.table_schema = $1
			AND kcu.table_name = $2
		ORDER BY kcu.ordinal_position
	`

	rows, err := db.Query(query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	primaryKeys := make(map[string]bool)
	for rows.Next() {
		var columnName string
		if err := rows.Scan(&columnName); err != nil {
			return nil, err
		}
		primaryKeys[columnName] = true
	}

	return primaryKeys, rows.Err()
}

func getForeignKeys(db *sql.DB, schemaName, tableName string) ([]foreignKey, error) {
	query := `
		SELECT
			rc.constraint_name,
			kcu1.column_name,
			kcu2.table_schema AS foreign_table_schema,
			kcu2.table_name AS foreign_table_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu1
			ON kcu1.constraint_name = rc.constraint_name
			AND kcu1.table_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage kcu2
			ON kcu2.constraint_name = rc.unique_constraint_name
			AND kcu2.table_schema = rc.unique_constraint_schema
			AND kcu2.ordinal_position = kcu1.ordinal_position
		WHERE kcu1.table_schema = $1 AND kcu1.table_name = $2
		ORDER BY rc.constraint_name, kcu1.ordinal_position
	`

	rows, err := db.Query(query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []foreignKey
	index := make(map[string]int)
	for rows.Next() {
		var constraint, fromColumn, toSchema, toTable string
		if err := rows.Scan(&constraint, &fromColumn, &toSchema, &toTable); err != nil {
			return nil, err
		}

		if i, ok := index[constraint]; ok {
			keys[i].columns = append(keys[i].columns, fromColumn)
			continue
		}
		index[constraint] = len(keys)
		keys = append(keys, foreignKey{
			name:     constraint,
			columns:  []string{fromColumn},
			toSchema: toSchema,
			toTable:  toTable,
		})
	}

	return keys, rows.Err()
}
