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

type IdeaService interface {
	GetIdeas(ctx context.Context, params models.IdeaListParams) ([]models.IdeaView, error)
	GetIdea(ctx context.Context, id string, viewerID string) (*models.IdeaDetail, error)
	CreateIdea(ctx context.Context, req models.CreateIdeaRequest) (*models.IdeaView, error)
	UpdateIdea(ctx context.Context, id string, req models.UpdateIdeaRequest) (*models.IdeaView, error)
	DeleteIdea(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, userID string) (*models.IdeaView, error)
	AddComment(ctx context.Context, id string, req models.CreateCommentRequest) (*models.Comment, error)
	GetComments(ctx context.Context, id string) ([]models.Comment, error)
	GetAllTags(ctx context.Context) ([]string, error)
}

type ideaService struct {
	ideaRepo repositories.IdeaRepository
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewIdeaService(ideaRepo repositories.IdeaRepository, logger *zap.SugaredLogger) IdeaService {
	return &ideaService{
		ideaRepo: ideaRepo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func ideaNotFound(id string) error {
	return models.ErrorNotFound{Resource: "Idea", ID: id}
}

func (s *ideaService) GetIdeas(ctx context.Context, params models.IdeaListParams) ([]models.IdeaView, error) {
	doc, err := s.ideaRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	counts := doc.CommentCounts()
	search := strings.ToLower(params.Search)

	ideas := make([]models.IdeaView, 0, len(doc.Ideas))
	for _, idea := range doc.Ideas {
		if search != "" &&
			!strings.Contains(strings.ToLower(idea.Title), search) &&
			!strings.Contains(strings.ToLower(idea.Description), search) {
			continue
		}
		if params.Tag != "" && !slices.Contains(idea.Tags, params.Tag) {
			continue
		}
		ideas = append(ideas, models.IdeaView{
			Idea:      idea,
			Comments:  counts[idea.ID],
			UserLiked: params.UserID != "" && doc.HasLike(params.UserID, idea.ID),
		})
	}

	switch params.Sort {
	case models.SortPopular:
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].Likes > ideas[j].Likes
		})
	default:
		s.sortByDate(ideas)
	}

	return paginate(ideas, params.Skip, params.Limit), nil
}

// sortByDate orders newest first. If any date cannot be parsed the stored order is kept.
func (s *ideaService) sortByDate(ideas []models.IdeaView) {
	dates := make(map[string]time.Time, len(ideas))
	for _, idea := range ideas {
		d, ok := idea.ParsedDate()
		if !ok {
			s.logger.Warnw("Unparsable idea date, keeping stored order", "idea_id", idea.ID, "date", idea.Date)
			return
		}
		dates[idea.ID] = d
	}
	sort.SliceStable(ideas, func(i, j int) bool {
		return dates[ideas[i].ID].After(dates[ideas[j].ID])
	})
}

func (s *ideaService) GetIdea(ctx context.Context, id string, viewerID string) (*models.IdeaDetail, error) {
	doc, err := s.ideaRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	idx := doc.IdeaIndex(id)
	if idx < 0 {
		return nil, ideaNotFound(id)
	}

	comments := doc.CommentsFor(id)
	return &models.IdeaDetail{
		IdeaView: models.IdeaView{
			Idea:      doc.Ideas[idx],
			Comments:  len(comments),
			UserLiked: viewerID != "" && doc.HasLike(viewerID, id),
		},
		CommentsList: comments,
	}, nil
}

func (s *ideaService) CreateIdea(ctx context.Context, req models.CreateIdeaRequest) (*models.IdeaView, error) {
	idea := models.Idea{
		ID:          uuid.NewString(),
		Title:       valueOf(req.Title),
		Description: valueOf(req.Description),
		Author:      authorOrDefault(req.Author),
		Date:        s.now().Format(models.IdeaDateLayout),
		Likes:       0,
		Tags:        tagsOrEmpty(req.Tags),
	}

	err := s.ideaRepo.Mutate(ctx, func(doc *models.IdeasDocument) error {
		doc.Ideas = append(doc.Ideas, idea)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Idea created", "idea_id", idea.ID)
	return &models.IdeaView{Idea: idea}, nil
}

func (s *ideaService) UpdateIdea(ctx context.Context, id string, req models.UpdateIdeaRequest) (*models.IdeaView, error) {
	var updated models.IdeaView
	err := s.ideaRepo.Mutate(ctx, func(doc *models.IdeasDocument) error {
		idx := doc.IdeaIndex(id)
		if idx < 0 {
			return ideaNotFound(id)
		}

		idea := &doc.Ideas[idx]
		req.Title.ApplyTo(&idea.Title)
		req.Description.ApplyTo(&idea.Description)
		req.Tags.ApplyTo(&idea.Tags)
		idea.Tags = tagsOrEmpty(idea.Tags)

		updated = models.IdeaView{
			Idea:     *idea,
			Comments: len(doc.CommentsFor(id)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *ideaService) DeleteIdea(ctx context.Context, id string) error {
	err := s.ideaRepo.Mutate(ctx, func(doc *models.IdeasDocument) error {
		if !doc.RemoveIdea(id) {
			return ideaNotFound(id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Idea deleted", "idea_id", id)
	return nil
}

func (s *ideaService) ToggleLike(ctx context.Context, id string, userID string) (*models.IdeaView, error) {
	var updated models.IdeaView
	err := s.ideaRepo.Mutate(ctx, func(doc *models.IdeasDocument) error {
		idx := doc.IdeaIndex(id)
		if idx < 0 {
			return ideaNotFound(id)
		}

		liked := doc.ToggleLike(idx, userID, uuid.NewString(), s.now())
		updated = models.IdeaView{
			Idea:      doc.Ideas[idx],
			Comments:  len(doc.CommentsFor(id)),
			UserLiked: liked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *ideaService) AddComment(ctx context.Context, id string, req models.CreateCommentRequest) (*models.Comment, error) {
	comment := models.Comment{
		ID:      uuid.NewString(),
		Content: valueOf(req.Content),
		Author:  authorOrDefault(req.Author),
		IdeaID:  id,
		Date:    s.now().Format(models.IdeaDateLayout),
	}

	err := s.ideaRepo.Mutate(ctx, func(doc *models.IdeasDocument) error {
		if doc.IdeaIndex(id) < 0 {
			return ideaNotFound(id)
		}
		doc.Comments = append(doc.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

func (s *ideaService) GetComments(ctx context.Context, id string) ([]models.Comment, error) {
	doc, err := s.ideaRepo.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.CommentsFor(id), nil
}

func (s *ideaService) GetAllTags(ctx context.Context) ([]string, error) {
	doc, err := s.ideaRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	tags := []string{}
	for _, idea := range doc.Ideas {
		tags = append(tags, idea.Tags...)
	}
	return uniqueSorted(tags), nil
}
