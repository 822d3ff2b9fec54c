package graph

import (
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"bookshelf-graphql/internal/domains/catalog/service"
)

//go:embed schema.graphql
var sdl string

// NewSchema parses the SDL and binds it to resolvers backed by catalog.
// Extra options (parallelism, depth limits) are appended to the defaults.
func NewSchema(catalog service.ServiceInterface, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	all := append([]graphql.SchemaOpt{graphql.UseFieldResolvers()}, opts...)

	schema, err := graphql.ParseSchema(sdl, NewResolver(catalog).root(), all...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return schema, nil
}
