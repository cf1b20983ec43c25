package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"blog-platform/handlers"
	"blog-platform/helper"
	"blog-platform/middleware"
	"blog-platform/models"
	"blog-platform/repositories"
	"blog-platform/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()
	dir := suite.T().TempDir()

	// Initialize repositories
	ideaStore := repositories.NewFileStore("ideas", filepath.Join(dir, "ideas.json"), models.NewIdeasDocument, logger, nil)
	postStore := repositories.NewFileStore("posts", filepath.Join(dir, "posts.json"), models.NewPostsDocument, logger, nil)
	ideaRepo := repositories.NewIdeaRepository(ideaStore)
	postRepo := repositories.NewPostRepository(postStore)

	// Initialize services
	ideaService := services.NewIdeaService(ideaRepo, logger)
	postService := services.NewPostService(postRepo, logger)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper(logger)
	ideaHandler := handlers.NewIdeaHandler(ideaService, httpHelper)
	postHandler := handlers.NewPostHandler(postService, httpHelper)

	mw := middleware.NewMiddleware(logger, nil)
	router := gin.New()
	router.Use(mw.Recoverer(), mw.RequestID(), mw.CORS([]string{"*"}))
	handlers.RegisterRoutes(router, ideaHandler, postHandler)

	suite.router = router
}

func (suite *IntegrationTestSuite) request(method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body.WriteString(p)
		default:
			suite.Require().NoError(json.NewEncoder(&body).Encode(p))
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, dst interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst))
}

func (suite *IntegrationTestSuite) createIdea(title string, tags ...string) models.IdeaView {
	w := suite.request(http.MethodPost, "/api/ideas", map[string]interface{}{
		"title":       title,
		"description": "about " + title,
		"tags":        tags,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var idea models.IdeaView
	suite.decode(w, &idea)
	return idea
}

func (suite *IntegrationTestSuite) createPost(title string, published bool) models.PostView {
	w := suite.request(http.MethodPost, "/api/posts", map[string]interface{}{
		"title":        title,
		"content":      "content of " + title,
		"is_published": published,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var post models.PostView
	suite.decode(w, &post)
	return post
}

func (suite *IntegrationTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/api/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (suite *IntegrationTestSuite) TestIdeaLifecycle() {
	idea := suite.createIdea("Community garden", "green")
	suite.Equal(models.DefaultAuthor, idea.Author)
	suite.Equal([]string{"green"}, idea.Tags)

	w := suite.request(http.MethodGet, "/api/ideas", nil)
	suite.Equal(http.StatusOK, w.Code)
	var ideas []models.IdeaView
	suite.decode(w, &ideas)
	suite.Require().Len(ideas, 1)

	w = suite.request(http.MethodPut, "/api/ideas/"+idea.ID, `{"title":"Rooftop garden","tags":null}`)
	suite.Equal(http.StatusOK, w.Code)
	var updated models.IdeaView
	suite.decode(w, &updated)
	suite.Equal("Rooftop garden", updated.Title)
	suite.Equal("about Community garden", updated.Description)
	suite.Equal([]string{}, updated.Tags)

	w = suite.request(http.MethodDelete, "/api/ideas/"+idea.ID, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())

	w = suite.request(http.MethodGet, "/api/ideas/"+idea.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodDelete, "/api/ideas/"+idea.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestIdeaLikesAndComments() {
	idea := suite.createIdea("Bike lanes")

	w := suite.request(http.MethodPut, "/api/ideas/"+idea.ID+"/like?user_id=u1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var liked models.IdeaView
	suite.decode(w, &liked)
	suite.Equal(1, liked.Likes)
	suite.True(liked.UserLiked)

	w = suite.request(http.MethodPut, "/api/ideas/"+idea.ID+"/like", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &liked)
	suite.Equal(2, liked.Likes)

	w = suite.request(http.MethodPut, "/api/ideas/"+idea.ID+"/like?user_id=", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &liked)
	suite.Equal(1, liked.Likes)
	suite.False(liked.UserLiked)

	w = suite.request(http.MethodPut, "/api/ideas/"+idea.ID+"/like", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/ideas/"+idea.ID+"/comments", map[string]string{"content": "Yes please"})
	suite.Equal(http.StatusCreated, w.Code)
	var comment models.Comment
	suite.decode(w, &comment)
	suite.Equal(idea.ID, comment.IdeaID)
	suite.Equal(models.DefaultAuthor, comment.Author)

	w = suite.request(http.MethodGet, "/api/ideas/"+idea.ID+"?user_id=u1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var detail map[string]interface{}
	suite.decode(w, &detail)
	suite.Equal(float64(1), detail["comments"])
	suite.Equal(true, detail["userLiked"])
	suite.Len(detail["comments_list"], 1)

	w = suite.request(http.MethodGet, "/api/ideas/"+idea.ID+"/comments", nil)
	suite.Equal(http.StatusOK, w.Code)
	var comments []models.Comment
	suite.decode(w, &comments)
	suite.Len(comments, 1)

	w = suite.request(http.MethodPut, "/api/ideas/missing/like", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, "/api/ideas/missing/comments", map[string]string{"content": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestIdeaListQuery() {
	suite.createIdea("Solar roofs", "energy")
	suite.createIdea("Wind farm", "energy", "wind")

	w := suite.request(http.MethodGet, "/api/ideas?tag=wind", nil)
	suite.Equal(http.StatusOK, w.Code)
	var ideas []models.IdeaView
	suite.decode(w, &ideas)
	suite.Require().Len(ideas, 1)
	suite.Equal("Wind farm", ideas[0].Title)

	w = suite.request(http.MethodGet, "/api/ideas?limit=1", nil)
	suite.decode(w, &ideas)
	suite.Len(ideas, 1)

	w = suite.request(http.MethodGet, "/api/ideas?sort=oldest", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/ideas?limit=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/ideas/tags/all", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`["energy","wind"]`, w.Body.String())
}

func (suite *IntegrationTestSuite) TestIdeaValidation() {
	w := suite.request(http.MethodPost, "/api/ideas", map[string]string{"title": "no description"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "description")

	w = suite.request(http.MethodPost, "/api/ideas", `{"title":`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/ideas", map[string]interface{}{
		"title":       strings.Repeat("t", 256),
		"description": "",
	})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/ideas", `{"title":null,"description":"d"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/posts", map[string]string{"title": "", "content": ""})
	suite.Equal(http.StatusCreated, w.Code)
	var post models.PostView
	suite.decode(w, &post)
	suite.Equal("", post.Title)
	suite.Nil(post.Excerpt)

	w = suite.request(http.MethodPost, "/api/posts", map[string]string{"title": "no content"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "content")
}

func (suite *IntegrationTestSuite) TestPostLifecycle() {
	draft := suite.createPost("Draft", false)
	suite.Nil(draft.PublishedAt)
	suite.Require().NotNil(draft.Excerpt)
	suite.Equal("content of Draft", *draft.Excerpt)

	w := suite.request(http.MethodGet, "/api/posts/"+draft.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/posts", nil)
	var posts []models.PostView
	suite.decode(w, &posts)
	suite.Empty(posts)

	w = suite.request(http.MethodGet, "/api/posts?published_only=false", nil)
	suite.decode(w, &posts)
	suite.Len(posts, 1)

	w = suite.request(http.MethodPut, "/api/posts/"+draft.ID, map[string]interface{}{"is_published": true})
	suite.Equal(http.StatusOK, w.Code)
	var published models.PostView
	suite.decode(w, &published)
	suite.True(published.IsPublished)
	suite.NotNil(published.PublishedAt)

	w = suite.request(http.MethodPost, "/api/posts/"+draft.ID+"/comments", map[string]string{"content": "First", "author": "Ana"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodGet, "/api/posts/"+draft.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var detail models.PostDetail
	suite.decode(w, &detail)
	suite.Equal(1, detail.CommentsCount)
	suite.Require().Len(detail.Comments, 1)
	suite.Equal("Ana", detail.Comments[0].Author)

	w = suite.request(http.MethodGet, "/api/posts/"+draft.ID+"/comments", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, "/api/posts/"+draft.ID, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/api/posts/"+draft.ID+"/comments", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestPostListAndTags() {
	for i := 0; i < 12; i++ {
		suite.createPost(fmt.Sprintf("Post %d", i), true)
	}

	w := suite.request(http.MethodGet, "/api/posts", nil)
	var posts []models.PostView
	suite.decode(w, &posts)
	suite.Len(posts, 10)

	w = suite.request(http.MethodGet, "/api/posts?skip=10", nil)
	suite.decode(w, &posts)
	suite.Len(posts, 2)

	w = suite.request(http.MethodGet, "/api/posts?search=post%2011", nil)
	suite.decode(w, &posts)
	suite.Require().Len(posts, 1)
	suite.Equal("Post 11", posts[0].Title)

	w = suite.request(http.MethodGet, "/api/posts/tags/all", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *IntegrationTestSuite) TestPostUpdateValidation() {
	post := suite.createPost("Post", true)

	w := suite.request(http.MethodPut, "/api/posts/"+post.ID, `{"is_published":"yes"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/posts/missing", map[string]string{"title": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
