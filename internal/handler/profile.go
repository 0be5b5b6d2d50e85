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

// ProfileHandler serves the role entity records: the gym, trainer and gym
// seeker profiles that own posts.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
	Posts    *repository.PostRepo
}

func NewProfileHandler(p *repository.ProfileRepo, posts *repository.PostRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p, Posts: posts}
}

type profileResp struct {
	ID          string    `json:"id"`
	Role        string    `json:"user_type"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfileResp(p model.Profile) profileResp {
	return profileResp{
		ID:          strconv.FormatUint(p.ID, 10),
		Role:        p.Role.String(),
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		CreatedAt:   p.CreatedAt,
	}
}

// GetMyProfile returns the authenticated caller's own profile.
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	pid, err := strconv.ParseUint(id.RoleEntityID, 10, 64)
	if err != nil {
		return authFailure(c, auth.ErrTokenInvalid)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, id.Role, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile lookup failed"})
	}
	return c.JSON(http.StatusOK, toProfileResp(p))
}

type updateBioReq struct {
	Bio string `json:"bio"`
}

// UpdateMyBio updates the caller's profile description.
func (h *ProfileHandler) UpdateMyBio(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	pid, err := strconv.ParseUint(id.RoleEntityID, 10, 64)
	if err != nil {
		return authFailure(c, auth.ErrTokenInvalid)
	}

	var req updateBioReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Bio) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bio too long"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Profiles.UpdateBio(ctx, id.Role, pid, req.Bio); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// GetProfile is the public profile detail endpoint: the profile plus its
// posts, newest first.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	role, err := model.ParseRole(strings.TrimSpace(c.Param("role")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown profile type"})
	}
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, role, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile lookup failed"})
	}
	posts, err := h.Posts.ListByAuthor(ctx, pid, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "posts lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"profile": toProfileResp(p),
		"posts":   toPostResps(posts),
	})
}
