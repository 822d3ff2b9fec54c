package graph

import (
	"bookshelf-graphql/internal/domains/catalog/model"
)

// resolverError carries an error code into the GraphQL response under
// errors[].extensions.code. graphql-go picks it up through Extensions().
type resolverError struct {
	err  error
	code string
}

func newResolverError(err error) *resolverError {
	return &resolverError{err: err, code: model.ToErrorCode(err)}
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Unwrap() error { return e.err }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}
