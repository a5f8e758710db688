package introspect

import (
	"database/sql"
	"strings"
)

// ColumnType describes a column type as reported by information_schema.
type ColumnType struct {
	// DataType is the base data type (e.g., "integer", "character varying").
	DataType string
	// UDTName is the underlying type name, used for arrays and custom types.
	UDTName          string
	CharMaxLength    sql.NullInt64
	NumericPrecision sql.NullInt64
	NumericScale     sql.NullInt64
}

// TypeMapper converts database column types to attribute datatype hints.
// Whatever a mapper returns is passed through Identifier before it reaches
// the model, so mappers do not need to produce valid notation identifiers.
type TypeMapper interface {
	MapType(col ColumnType) string
}

// TypeMapperFunc adapts a plain function to TypeMapper.
type TypeMapperFunc func(col ColumnType) string

// MapType calls f(col).
func (f TypeMapperFunc) MapType(col ColumnType) string {
	return f(col)
}

// PostgreSQLTypeMapper maps PostgreSQL types to short datatype hints.
// It supports custom type overrides via the CustomMappings field.
type PostgreSQLTypeMapper struct {
	// CustomMappings allows overriding default type mappings.
	// Keys are PostgreSQL type names (case-insensitive).
	CustomMappings map[string]string
}

// NewPostgreSQLTypeMapper creates a new TypeMapper with optional custom mappings.
//
// Example:
//
//	mapper := introspect.NewPostgreSQLTypeMapper(map[string]string{
//	    "citext": "text",
//	    "ltree":  "path",
//	})
func NewPostgreSQLTypeMapper(customMappings map[string]string) *PostgreSQLTypeMapper {
	return &PostgreSQLTypeMapper{CustomMappings: customMappings}
}

// MapType checks CustomMappings by data type and then by UDT name before
// falling back to MapPostgreSQLType.
func (m *PostgreSQLTypeMapper) MapType(col ColumnType) string {
	if m.CustomMappings != nil {
		if mapped, ok := m.CustomMappings[strings.ToLower(col.DataType)]; ok {
			return mapped
		}
		if mapped, ok := m.CustomMappings[strings.ToLower(col.UDTName)]; ok {
			return mapped
		}
	}
	return MapPostgreSQLType(col)
}

// DefaultTypeMappings lists the built-in PostgreSQL type hints.
var DefaultTypeMappings = map[string]string{
	"integer":                     "int",
	"int4":                        "int",
	"bigint":                      "bigint",
	"int8":                        "bigint",
	"smallint":                    "smallint",
	"int2":                        "smallint",
	"boolean":                     "boolean",
	"bool":                        "boolean",
	"text":                        "text",
	"character varying":           "varchar",
	"varchar":                     "varchar",
	"character":                   "char",
	"char":                        "char",
	"bpchar":                      "char",
	"numeric":                     "decimal",
	"decimal":                     "decimal",
	"real":                        "float",
	"float4":                      "float",
	"double precision":            "double",
	"float8":                      "double",
	"timestamp without time zone": "timestamp",
	"timestamp":                   "timestamp",
	"timestamp with time zone":    "timestamptz",
	"timestamptz":                 "timestamptz",
	"date":                        "date",
	"time without time zone":      "time",
	"time":                        "time",
	"time with time zone":         "timetz",
	"timetz":                      "timetz",
	"uuid":                        "uuid",
	"json":                        "json",
	"jsonb":                       "jsonb",
	"bytea":                       "binary",
}

// MapPostgreSQLType converts a PostgreSQL column type to a datatype hint.
// Lengths and precisions are dropped since the notation has no syntax for
// them. Arrays become "<element>_array" and user-defined types keep their
// own name.
func MapPostgreSQLType(col ColumnType) string {
	dataType := strings.ToLower(col.DataType)
	if mapped, ok := DefaultTypeMappings[dataType]; ok {
		return mapped
	}
	switch dataType {
	case "array":
		element := strings.TrimPrefix(col.UDTName, "_")
		if mapped, ok := DefaultTypeMappings[strings.ToLower(element)]; ok {
			element = mapped
		}
		return element + "_array"
	case "user-defined":
		return col.UDTName
	}
	return dataType
}
