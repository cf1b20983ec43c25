package models

import (
	"encoding/json"
	"slices"
	"time"
)

// IdeasDocument is the persisted root of the ideas resource.
type IdeasDocument struct {
	Ideas    []Idea    `json:"ideas"`
	Comments []Comment `json:"comments"`
	Likes    []Like    `json:"likes"`
	// Tags is reserved. It is carried through load and save untouched.
	Tags []json.RawMessage `json:"tags"`
}

// NewIdeasDocument returns a document with every collection empty.
func NewIdeasDocument() *IdeasDocument {
	d := &IdeasDocument{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (d *IdeasDocument) Normalize() {
	if d.Ideas == nil {
		d.Ideas = []Idea{}
	}
	if d.Comments == nil {
		d.Comments = []Comment{}
	}
	if d.Likes == nil {
		d.Likes = []Like{}
	}
	if d.Tags == nil {
		d.Tags = []json.RawMessage{}
	}
	for i := range d.Ideas {
		if d.Ideas[i].Tags == nil {
			d.Ideas[i].Tags = []string{}
		}
	}
}

// IdeaIndex returns the position of the idea with the given id, or -1.
func (d *IdeasDocument) IdeaIndex(id string) int {
	return slices.IndexFunc(d.Ideas, func(i Idea) bool { return i.ID == id })
}

func (d *IdeasDocument) CommentsFor(ideaID string) []Comment {
	comments := []Comment{}
	for _, c := range d.Comments {
		if c.IdeaID == ideaID {
			comments = append(comments, c)
		}
	}
	return comments
}

// CommentCounts groups the comment collection by idea id.
func (d *IdeasDocument) CommentCounts() map[string]int {
	counts := make(map[string]int, len(d.Ideas))
	for _, c := range d.Comments {
		counts[c.IdeaID]++
	}
	return counts
}

// LikeIndex returns the position of the like of userID on ideaID, or -1.
func (d *IdeasDocument) LikeIndex(userID, ideaID string) int {
	return slices.IndexFunc(d.Likes, func(l Like) bool {
		return l.IdeaID == ideaID && l.UserID == userID
	})
}

func (d *IdeasDocument) HasLike(userID, ideaID string) bool {
	return d.LikeIndex(userID, ideaID) >= 0
}

// ToggleLike flips the like of userID on the idea at index idx and moves
// the idea's counter with it. It reports whether the user now likes the idea.
func (d *IdeasDocument) ToggleLike(idx int, userID, likeID string, now time.Time) bool {
	idea := &d.Ideas[idx]
	if li := d.LikeIndex(userID, idea.ID); li >= 0 {
		d.Likes = slices.Delete(d.Likes, li, li+1)
		idea.Likes = max(0, idea.Likes-1)
		return false
	}
	d.Likes = append(d.Likes, Like{
		ID:        likeID,
		UserID:    userID,
		IdeaID:    idea.ID,
		CreatedAt: NewTimestamp(now),
	})
	idea.Likes++
	return true
}

// RemoveIdea deletes the idea together with its comments and likes.
func (d *IdeasDocument) RemoveIdea(id string) bool {
	idx := d.IdeaIndex(id)
	if idx < 0 {
		return false
	}
	d.Ideas = slices.Delete(d.Ideas, idx, idx+1)
	d.Comments = slices.DeleteFunc(d.Comments, func(c Comment) bool { return c.IdeaID == id })
	d.Likes = slices.DeleteFunc(d.Likes, func(l Like) bool { return l.IdeaID == id })
	return true
}

// PostsDocument is the persisted root of the posts resource.
type PostsDocument struct {
	Posts        []Post        `json:"posts"`
	PostComments []PostComment `json:"post_comments"`
	// Tags is reserved. It is carried through load and save untouched.
	Tags []json.RawMessage `json:"tags"`
}

func NewPostsDocument() *PostsDocument {
	d := &PostsDocument{}
	d.Normalize()
	return d
}

func (d *PostsDocument) Normalize() {
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	if d.PostComments == nil {
		d.PostComments = []PostComment{}
	}
	if d.Tags == nil {
		d.Tags = []json.RawMessage{}
	}
	for i := range d.Posts {
		if d.Posts[i].Tags == nil {
			d.Posts[i].Tags = []string{}
		}
	}
}

func (d *PostsDocument) PostIndex(id string) int {
	return slices.IndexFunc(d.Posts, func(p Post) bool { return p.ID == id })
}

func (d *PostsDocument) CommentsFor(postID string) []PostComment {
	comments := []PostComment{}
	for _, c := range d.PostComments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments
}

func (d *PostsDocument) CommentCounts() map[string]int {
	counts := make(map[string]int, len(d.Posts))
	for _, c := range d.PostComments {
		counts[c.PostID]++
	}
	return counts
}

// RemovePost deletes the post together with its comments.
func (d *PostsDocument) RemovePost(id string) bool {
	idx := d.PostIndex(id)
	if idx < 0 {
		return false
	}
	d.Posts = slices.Delete(d.Posts, idx, idx+1)
	d.PostComments = slices.DeleteFunc(d.PostComments, func(c PostComment) bool { return c.PostID == id })
	return true
}

// DocumentRecord is the row a whole document is kept in by the database store.
type DocumentRecord struct {
	Name      string `gorm:"primaryKey;size:64"`
	Body      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (DocumentRecord) TableName() string {
	return "documents"
}
