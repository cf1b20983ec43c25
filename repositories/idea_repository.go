package repositories

import (
	"context"

	"blog-platform/models"
)

type IdeaRepository interface {
	Read(ctx context.Context) (*models.IdeasDocument, error)
	Mutate(ctx context.Context, fn func(doc *models.IdeasDocument) error) error
}

func NewIdeaRepository(store DocumentStore[models.IdeasDocument]) IdeaRepository {
	return &documentRepository[models.IdeasDocument]{store: store}
}
