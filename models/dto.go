package models

const (
	SortLatest  = "latest"
	SortPopular = "popular"

	DefaultAuthor = "Anonymous"
	AnonymousUser = "anonymous"
)

// Required fields on create requests are pointers: they must be sent, but an
// empty string is accepted.
type CreateIdeaRequest struct {
	Title       *string  `json:"title" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Author      string   `json:"author" validate:"max=100"`
	Tags        []string `json:"tags" validate:"max=50,dive,max=100"`
}

// UpdateIdeaRequest only touches the fields that were sent.
type UpdateIdeaRequest struct {
	Title       Optional[string]   `json:"title,omitzero" validate:"omitempty"`
	Description Optional[string]   `json:"description,omitzero" validate:"omitempty"`
	Tags        Optional[[]string] `json:"tags,omitzero" validate:"omitempty,max=50,dive,max=100"`
}

type CreateCommentRequest struct {
	Content *string `json:"content" validate:"required"`
	Author  string  `json:"author" validate:"max=100"`
}

type IdeaListParams struct {
	Skip   int    `form:"skip,default=0" validate:"min=0"`
	Limit  int    `form:"limit,default=100" validate:"min=1,max=100"`
	Search string `form:"search"`
	Tag    string `form:"tag"`
	Sort   string `form:"sort,default=latest" validate:"oneof=latest popular"`
	UserID string `form:"user_id" validate:"max=100"`
}

type ViewerParams struct {
	UserID string `form:"user_id" validate:"max=100"`
}

// LikeParams.UserID falls back to AnonymousUser when absent or empty.
type LikeParams struct {
	UserID string `form:"user_id" validate:"max=100"`
}

type CreatePostRequest struct {
	Title       *string  `json:"title" validate:"required"`
	Content     *string  `json:"content" validate:"required"`
	Excerpt     *string  `json:"excerpt"`
	Author      string   `json:"author" validate:"max=100"`
	Tags        []string `json:"tags" validate:"max=50,dive,max=100"`
	IsPublished bool     `json:"is_published"`
}

type UpdatePostRequest struct {
	Title       Optional[string]   `json:"title,omitzero" validate:"omitempty"`
	Content     Optional[string]   `json:"content,omitzero" validate:"omitempty"`
	Excerpt     Optional[string]   `json:"excerpt,omitzero" validate:"omitempty"`
	Tags        Optional[[]string] `json:"tags,omitzero" validate:"omitempty,max=50,dive,max=100"`
	IsPublished Optional[bool]     `json:"is_published,omitzero" validate:"omitempty"`
}

type CreatePostCommentRequest struct {
	Content *string `json:"content" validate:"required"`
	Author  string  `json:"author" validate:"max=100"`
}

type PostListParams struct {
	Skip          int    `form:"skip,default=0" validate:"min=0"`
	Limit         int    `form:"limit,default=10" validate:"min=1,max=100"`
	Search        string `form:"search"`
	Tag           string `form:"tag"`
	PublishedOnly bool   `form:"published_only,default=true"`
}
