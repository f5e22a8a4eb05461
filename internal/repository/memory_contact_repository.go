package repository

import (
	"context"
	"sync"

	"github.com/folio/backend/internal/model"
	"github.com/google/uuid"
)

// MemoryContactRepository keeps documents in process memory.
// Used for local development (STORE_DRIVER=memory) and tests.
type MemoryContactRepository struct {
	mu   sync.RWMutex
	ids  []string
	docs []model.ContactDocument
}

// NewMemoryContactRepository returns an empty store.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Insert(ctx context.Context, doc *model.ContactDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.docs = append(r.docs, *doc)
	return id, nil
}

func (r *MemoryContactRepository) FindAll(ctx context.Context) ([]*model.ContactDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ContactDocument, len(r.docs))
	for i := range r.docs {
		d := r.docs[i]
		out[i] = &d
	}
	return out, nil
}

func (r *MemoryContactRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// IDs returns the generated identifiers in insertion order.
func (r *MemoryContactRepository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ids...)
}
