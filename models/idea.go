package models

import "time"

// IdeaDateLayout is the display format of idea and comment dates.
const IdeaDateLayout = "January 02, 2006"

// ideaDateParseLayout also accepts single digit days written by older clients.
const ideaDateParseLayout = "January 2, 2006"

type Idea struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Likes       int      `json:"likes"`
	Tags        []string `json:"tags"`
}

// ParsedDate returns the idea date as a time, or false if it is not in display format.
func (i Idea) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(ideaDateParseLayout, i.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type Comment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  string `json:"author"`
	IdeaID  string `json:"idea_id"`
	Date    string `json:"date"`
}

// Like is the edge of the user/idea "liked" relation. At most one per (UserID, IdeaID).
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IdeaID    string    `json:"idea_id"`
	CreatedAt Timestamp `json:"created_at"`
}

// IdeaView is an idea together with the fields derived at read time.
type IdeaView struct {
	Idea
	Comments  int  `json:"comments"`
	UserLiked bool `json:"userLiked"`
}

type IdeaDetail struct {
	IdeaView
	CommentsList []Comment `json:"comments_list"`
}
