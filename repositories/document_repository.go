package repositories

import (
	"context"
	"sync"
)

// documentRepository serializes load, mutate and save of one document within the process.
// Writers in other processes still race with last write wins.
type documentRepository[D any] struct {
	mu    sync.Mutex
	store DocumentStore[D]
}

func (r *documentRepository[D]) Read(ctx context.Context) (*D, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Load(ctx)
}

// Mutate loads the document, applies fn and saves the result. When fn returns
// an error nothing is saved and the error is returned as is.
func (r *documentRepository[D]) Mutate(ctx context.Context, fn func(doc *D) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return r.store.Save(ctx, doc)
}
