package posts

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"instashare-backend/models"
	"instashare-backend/testutils"
	"instashare-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	testUserID  = "abc12345-e89b-12d3-a456-426614174000"
	testPostID  = "123e4567-e89b-12d3-a456-426614174000"
	otherUserID = "def12345-e89b-12d3-a456-426614174000"
)

// expectEnrichment mocks the four per-post queries issued by buildPostResponse
func expectEnrichment(mock sqlmock.Sqlmock, postID, authorID string, likes, comments, viewerLikes int64) {
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "profile_picture"}).
			AddRow(authorID, "alice", "http://img/avatar.jpg"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(likes))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(comments))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(viewerLikes))
}

func TestCreatePost_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "profile_picture"}).
			AddRow(testUserID, "alice", ""))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testPostID))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreatePost(c)
	})

	body, _ := json.Marshal(map[string]string{
		"imageUrl": "http://img/1.jpg",
		"caption":  "first post",
	})

	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody models.PostResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, testPostID, respBody.ID)
	assert.Equal(t, "http://img/1.jpg", respBody.ImageURL)
	assert.Equal(t, "first post", respBody.Caption)
	assert.Equal(t, "alice", respBody.Author.UserName)
	assert.Equal(t, int64(0), respBody.LikesCount)
	assert.Equal(t, int64(0), respBody.CommentsCount)
	assert.False(t, respBody.ViewerHasLiked)
}

func TestCreatePost_MissingImageURL(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreatePost(c)
	})

	body, _ := json.Marshal(map[string]string{"caption": "no image"})

	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody utils.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeBadRequest, respBody.Error)
}

func TestCreatePost_BlankImageURL(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreatePost(c)
	})

	body, _ := json.Marshal(map[string]string{"imageUrl": "   "})

	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody utils.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Image URL is required", respBody.Message)
}

func TestCreatePost_ImageURLTooLong(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreatePost(c)
	})

	body, _ := json.Marshal(map[string]string{
		"imageUrl": "http://img/" + strings.Repeat("a", models.MaxImageURLLength),
	})

	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody utils.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Image URL must not exceed 500 characters", respBody.Message)
}

func TestCreatePost_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts", CreatePost)

	body, _ := json.Marshal(map[string]string{"imageUrl": "http://img/1.jpg"})

	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetFeed_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	newest := time.Now()
	older := newest.Add(-time.Hour)
	secondPostID := "223e4567-e89b-12d3-a456-426614174000"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM "posts" ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url", "caption", "created_at"}).
			AddRow(testPostID, testUserID, "http://img/2.jpg", "newest", newest).
			AddRow(secondPostID, otherUserID, "http://img/1.jpg", "older", older))
	expectEnrichment(mock, testPostID, testUserID, 3, 1, 1)
	expectEnrichment(mock, secondPostID, otherUserID, 0, 0, 0)
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.GET("/posts", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		GetFeed(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody models.PageResponse[models.PostResponse]
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Len(t, respBody.Content, 2)
	assert.Equal(t, 0, respBody.Page)
	assert.Equal(t, 1, respBody.TotalPages)

	assert.Equal(t, testPostID, respBody.Content[0].ID)
	assert.Equal(t, int64(3), respBody.Content[0].LikesCount)
	assert.Equal(t, int64(1), respBody.Content[0].CommentsCount)
	assert.True(t, respBody.Content[0].ViewerHasLiked)

	assert.Equal(t, secondPostID, respBody.Content[1].ID)
	assert.Equal(t, int64(0), respBody.Content[1].LikesCount)
	assert.False(t, respBody.Content[1].ViewerHasLiked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostByID_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url", "caption", "created_at"}).
			AddRow(testPostID, testUserID, "http://img/1.jpg", "hello", time.Now()))
	expectEnrichment(mock, testPostID, testUserID, 2, 5, 0)
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.GET("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", otherUserID)
		GetPostByID(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts/"+testPostID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody models.PostResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, testPostID, respBody.ID)
	assert.Equal(t, int64(2), respBody.LikesCount)
	assert.Equal(t, int64(5), respBody.CommentsCount)
	assert.False(t, respBody.ViewerHasLiked)
}

func TestGetPostByID_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	r := testutils.SetupTestRouter()
	r.GET("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		GetPostByID(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts/"+testPostID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody utils.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeNotFound, respBody.Error)
	assert.Equal(t, "Post not found", respBody.Message)
}

func TestGetPostByID_InvalidID(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	r := testutils.SetupTestRouter()
	r.GET("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		GetPostByID(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// The post and its dependent likes and comments go away in one transaction
func TestDeletePost_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1`).
		WithArgs(testPostID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url"}).
			AddRow(testPostID, testUserID, "http://img/1.jpg"))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE post_id = \$1`).
		WithArgs(testPostID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "comments" WHERE post_id = \$1`).
		WithArgs(testPostID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(testPostID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/posts/"+testPostID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_Forbidden(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1`).
		WithArgs(testPostID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url"}).
			AddRow(testPostID, testUserID, "http://img/1.jpg"))

	r := testutils.SetupTestRouter()
	r.DELETE("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", otherUserID)
		DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/posts/"+testPostID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody utils.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeForbidden, respBody.Error)
	assert.Equal(t, "You can only delete your own posts", respBody.Message)

	// no delete statement may have been issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1`).
		WithArgs(testPostID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.DELETE("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/posts/"+testPostID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
