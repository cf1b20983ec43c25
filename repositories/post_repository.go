package repositories

import (
	"context"

	"blog-platform/models"
)

type PostRepository interface {
	Read(ctx context.Context) (*models.PostsDocument, error)
	Mutate(ctx context.Context, fn func(doc *models.PostsDocument) error) error
}

func NewPostRepository(store DocumentStore[models.PostsDocument]) PostRepository {
	return &documentRepository[models.PostsDocument]{store: store}
}
