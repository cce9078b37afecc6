package ports

import "context"

// GrammarReader defines how grammar text is fetched by path.
// This allows the storage layer (filesystem, memory) to be decoupled.
type GrammarReader interface {
	// ReadGrammar returns the raw grammar text stored at path.
	ReadGrammar(ctx context.Context, path string) (string, error)
}

// Watchable defines an interface for readers that can notify about grammar changes.
// This is typically used for live preview while editing a grammar file.
type Watchable interface {
	// Watch returns a channel that receives the new grammar text every time the file at
	// path changes. The channel is closed when ctx is done.
	Watch(ctx context.Context, path string) (<-chan string, error)
}
