// Package graph binds the catalog service to the GraphQL schema.
package graph

import (
	"bookshelf-graphql/internal/domains/catalog/service"
)

// Resolver is the root resolver for GraphQL queries and mutations.
type Resolver struct {
	catalog service.ServiceInterface
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(catalog service.ServiceInterface) *Resolver {
	return &Resolver{catalog: catalog}
}

// rootResolver exposes the Query and Mutation fields on one value, which is
// what graphql-go expects of the root.
type rootResolver struct {
	*queryResolver
	*mutationResolver
}

func (r *Resolver) root() *rootResolver {
	return &rootResolver{
		queryResolver:    &queryResolver{r},
		mutationResolver: &mutationResolver{r},
	}
}
