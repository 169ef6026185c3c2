// Package docstore is the contract for the remote, schemaless document store the catalog mirrors to.
//
// Collections are addressed by slash-joined paths ("Item", "User/<owner>/Item"); a document is a
// string key plus a flat field map. Backends decide how those paths map onto physical storage.
package docstore

import (
	"context"
	"strings"
)

// Document is one stored record.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Store is implemented by every backend.
type Store interface {
	// List returns every document of a collection ordered by id.
	List(ctx context.Context, collection string) ([]Document, error)
	// Set replaces the document's fields entirely, creating it when absent.
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
}

// Path joins collection and document segments the way the remote store addresses them.
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}

func cloneFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
