package models

import "time"

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Author      string     `json:"author"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   Timestamp  `json:"updated_at"`
	PublishedAt *Timestamp `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	Tags        []string   `json:"tags"`
}

// SortTime is the time a post is ordered by in listings.
func (p Post) SortTime() time.Time {
	if p.PublishedAt != nil {
		return p.PublishedAt.Time
	}
	return p.CreatedAt.Time
}

type PostComment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	PostID    string    `json:"post_id"`
	CreatedAt Timestamp `json:"created_at"`
}

type PostView struct {
	Post
	CommentsCount int `json:"comments_count"`
}

type PostDetail struct {
	PostView
	Comments []PostComment `json:"comments"`
}
