package services

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"blog-platform/models"
	"blog-platform/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostService interface {
	GetPosts(ctx context.Context, params models.PostListParams) ([]models.PostView, error)
	GetPost(ctx context.Context, id string) (*models.PostDetail, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.PostView, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.PostView, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, req models.CreatePostCommentRequest) (*models.PostComment, error)
	GetComments(ctx context.Context, id string) ([]models.PostComment, error)
	GetAllTags(ctx context.Context) ([]string, error)
}

type postService struct {
	postRepo repositories.PostRepository
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewPostService(postRepo repositories.PostRepository, logger *zap.SugaredLogger) PostService {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func postNotFound(id string) error {
	return models.ErrorNotFound{Resource: "Post", ID: id}
}

func (s *postService) GetPosts(ctx context.Context, params models.PostListParams) ([]models.PostView, error) {
	doc, err := s.postRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	counts := doc.CommentCounts()
	search := strings.ToLower(params.Search)

	posts := make([]models.PostView, 0, len(doc.Posts))
	for _, post := range doc.Posts {
		if params.PublishedOnly && !post.IsPublished {
			continue
		}
		if search != "" && !postMatches(post, search) {
			continue
		}
		if params.Tag != "" && !slices.Contains(post.Tags, params.Tag) {
			continue
		}
		posts = append(posts, models.PostView{Post: post, CommentsCount: counts[post.ID]})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].SortTime().After(posts[j].SortTime())
	})

	return paginate(posts, params.Skip, params.Limit), nil
}

// postMatches reports whether the lower cased term occurs in the title, content or excerpt.
func postMatches(post models.Post, term string) bool {
	if strings.Contains(strings.ToLower(post.Title), term) ||
		strings.Contains(strings.ToLower(post.Content), term) {
		return true
	}
	return post.Excerpt != nil && strings.Contains(strings.ToLower(*post.Excerpt), term)
}

// publishedIndex finds a post that readers may see. Drafts count as missing.
func publishedIndex(doc *models.PostsDocument, id string) (int, error) {
	idx := doc.PostIndex(id)
	if idx < 0 || !doc.Posts[idx].IsPublished {
		return -1, postNotFound(id)
	}
	return idx, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*models.PostDetail, error) {
	doc, err := s.postRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := publishedIndex(doc, id)
	if err != nil {
		return nil, err
	}

	comments := doc.CommentsFor(id)
	return &models.PostDetail{
		PostView: models.PostView{
			Post:          doc.Posts[idx],
			CommentsCount: len(comments),
		},
		Comments: comments,
	}, nil
}

func (s *postService) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.PostView, error) {
	now := models.NewTimestamp(s.now())

	content := valueOf(req.Content)
	excerpt := req.Excerpt
	if (excerpt == nil || *excerpt == "") && content != "" {
		derived := deriveExcerpt(content)
		excerpt = &derived
	}

	post := models.Post{
		ID:          uuid.NewString(),
		Title:       valueOf(req.Title),
		Content:     content,
		Excerpt:     excerpt,
		Author:      authorOrDefault(req.Author),
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPublished: req.IsPublished,
		Tags:        tagsOrEmpty(req.Tags),
	}
	if post.IsPublished {
		post.PublishedAt = &now
	}

	err := s.postRepo.Mutate(ctx, func(doc *models.PostsDocument) error {
		doc.Posts = append(doc.Posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Post created", "post_id", post.ID, "published", post.IsPublished)
	return &models.PostView{Post: post}, nil
}

func (s *postService) UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.PostView, error) {
	now := models.NewTimestamp(s.now())

	var updated models.PostView
	err := s.postRepo.Mutate(ctx, func(doc *models.PostsDocument) error {
		idx := doc.PostIndex(id)
		if idx < 0 {
			return postNotFound(id)
		}

		post := &doc.Posts[idx]
		req.Title.ApplyTo(&post.Title)
		req.Content.ApplyTo(&post.Content)
		req.Tags.ApplyTo(&post.Tags)
		post.Tags = tagsOrEmpty(post.Tags)

		switch {
		case req.Excerpt.Present():
			excerpt := req.Excerpt.Value
			post.Excerpt = &excerpt
		case req.Excerpt.Null || req.Content.Set:
			post.Excerpt = nil
			if post.Content != "" {
				excerpt := deriveExcerpt(post.Content)
				post.Excerpt = &excerpt
			}
		}

		if req.IsPublished.Present() {
			if req.IsPublished.Value && post.PublishedAt == nil {
				publishedAt := now
				post.PublishedAt = &publishedAt
			}
			post.IsPublished = req.IsPublished.Value
		}

		post.UpdatedAt = now

		updated = models.PostView{
			Post:          *post,
			CommentsCount: len(doc.CommentsFor(id)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *postService) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.Mutate(ctx, func(doc *models.PostsDocument) error {
		if !doc.RemovePost(id) {
			return postNotFound(id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Post deleted", "post_id", id)
	return nil
}

func (s *postService) AddComment(ctx context.Context, id string, req models.CreatePostCommentRequest) (*models.PostComment, error) {
	comment := models.PostComment{
		ID:        uuid.NewString(),
		Content:   valueOf(req.Content),
		Author:    authorOrDefault(req.Author),
		PostID:    id,
		CreatedAt: models.NewTimestamp(s.now()),
	}

	err := s.postRepo.Mutate(ctx, func(doc *models.PostsDocument) error {
		if _, err := publishedIndex(doc, id); err != nil {
			return err
		}
		doc.PostComments = append(doc.PostComments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

func (s *postService) GetComments(ctx context.Context, id string) ([]models.PostComment, error) {
	doc, err := s.postRepo.Read(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := publishedIndex(doc, id); err != nil {
		return nil, err
	}
	return doc.CommentsFor(id), nil
}

func (s *postService) GetAllTags(ctx context.Context) ([]string, error) {
	doc, err := s.postRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	tags := []string{}
	for _, post := range doc.Posts {
		tags = append(tags, post.Tags...)
	}
	return uniqueSorted(tags), nil
}
