package introspect

// Option configures introspection behavior.
type Option func(*options)

type options struct {
	schemas           []string
	excludeTables     []string
	includeAllSchemas bool
	typeMapper        TypeMapper
}

func defaultOptions() *options {
	return &options{
		schemas:    []string{"public"},
		typeMapper: NewPostgreSQLTypeMapper(nil),
	}
}

// WithSchemas specifies which database schemas to introspect.
// If not specified, defaults to ["public"].
func WithSchemas(schemas ...string) Option {
	return func(o *options) {
		if len(schemas) > 0 {
			o.schemas = schemas
		}
	}
}

// WithExcludeTables specifies tables to leave out of the model. Relationships
// derived from foreign keys into or out of an excluded table are dropped too.
func WithExcludeTables(tables ...string) Option {
	return func(o *options) {
		o.excludeTables = tables
	}
}

// WithAllSchemas includes all non-system schemas in the introspection.
// This overrides WithSchemas.
func WithAllSchemas() Option {
	return func(o *options) {
		o.includeAllSchemas = true
	}
}

// WithTypeMapper sets a custom mapper for attribute datatype hints.
// A nil mapper keeps the default PostgreSQL mapper.
func WithTypeMapper(mapper TypeMapper) Option {
	return func(o *options) {
		if mapper != nil {
			o.typeMapper = mapper
		}
	}
}

// WithTypeMappings provides custom type mappings as a simple map.
// Keys are PostgreSQL type names (case-insensitive), values are datatype hints.
func WithTypeMappings(mappings map[string]string) Option {
	return func(o *options) {
		o.typeMapper = NewPostgreSQLTypeMapper(mappings)
	}
}
