package services

import (
	"path/filepath"
	"testing"
	"time"

	"blog-platform/models"
	"blog-platform/repositories"

	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)}
}

func newTestIdeaService(t *testing.T, clock *fakeClock) (*ideaService, repositories.IdeaRepository) {
	t.Helper()
	store := repositories.NewFileStore("ideas", filepath.Join(t.TempDir(), "ideas.json"),
		models.NewIdeasDocument, zap.NewNop().Sugar(), nil)
	repo := repositories.NewIdeaRepository(store)
	svc := NewIdeaService(repo, zap.NewNop().Sugar()).(*ideaService)
	svc.now = clock.Now
	return svc, repo
}

func newTestPostService(t *testing.T, clock *fakeClock) (*postService, repositories.PostRepository) {
	t.Helper()
	store := repositories.NewFileStore("posts", filepath.Join(t.TempDir(), "posts.json"),
		models.NewPostsDocument, zap.NewNop().Sugar(), nil)
	repo := repositories.NewPostRepository(store)
	svc := NewPostService(repo, zap.NewNop().Sugar()).(*postService)
	svc.now = clock.Now
	return svc, repo
}

func ptr(s string) *string {
	return &s
}
