package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/auth"
	"github.com/iliyamo/gym-connect/internal/middleware"
	"github.com/iliyamo/gym-connect/internal/model"
	"github.com/iliyamo/gym-connect/internal/repository"
)

// PostHandler serves the feed: public listing plus authenticated create and
// delete.  Ownership is checked against the profile id in the token subject.
type PostHandler struct {
	Posts *repository.PostRepo
}

func NewPostHandler(p *repository.PostRepo) *PostHandler { return &PostHandler{Posts: p} }

type createPostReq struct {
	Content string `json:"content"`
}

type postResp struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPostResps(posts []model.Post) []postResp {
	out := make([]postResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResp{
			ID:         strconv.FormatUint(p.ID, 10),
			AuthorID:   strconv.FormatUint(p.AuthorID, 10),
			AuthorRole: p.AuthorRole.String(),
			Content:    p.Content,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out
}

// CreatePost publishes a feed entry authored by the caller's profile.
func (h *PostHandler) CreatePost(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	authorID, err := strconv.ParseUint(id.RoleEntityID, 10, 64)
	if err != nil {
		return authFailure(c, auth.ErrTokenInvalid)
	}

	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content required"})
	}
	if len(req.Content) > 2000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content too long"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	postID, err := h.Posts.Create(ctx, authorID, id.Role, req.Content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create post failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": strconv.FormatUint(postID, 10)})
}

// Feed lists the newest posts across all profiles.  Public; sits behind the
// response cache.
func (h *PostHandler) Feed(c echo.Context) error {
	limit := 20
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	offset := 0
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.Feed(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "feed lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": toPostResps(posts)})
}

// DeletePost removes one of the caller's own posts.  A post owned by someone
// else looks the same as a missing one.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	authorID, err := strconv.ParseUint(id.RoleEntityID, 10, 64)
	if err != nil {
		return authFailure(c, auth.ErrTokenInvalid)
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Delete(ctx, postID, authorID, id.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
