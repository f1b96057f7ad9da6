// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/auth/transport/http/dto"
	"feed_backend/internal/feature/auth/usecase"
	platformhandler "feed_backend/internal/platform/http/handler"
	jwtmw "feed_backend/internal/platform/jwt"
)

// avatarField is the multipart field carrying the optional profile picture.
const avatarField = "profilePic"

// AuthUsecase defines the account operations used by the handler.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, upd entity.ProfileUpdate) (*entity.User, error)
}

// AuthHandler handles HTTP requests for registration, login and profile.
type AuthHandler struct {
	auth           AuthUsecase
	maxUploadBytes int64
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, maxUploadBytes int64) *AuthHandler {
	return &AuthHandler{auth: auth, maxUploadBytes: maxUploadBytes}
}

// respondError maps usecase errors to HTTP responses.
// Unexpected errors are logged and answered with a generic body.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "user with that email already exists"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
	case errors.Is(err, usecase.ErrMediaUpload):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "image upload failed"})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.InternalError)
	}
}

// Signup handles POST /auth/signup.
// - 400 on missing or malformed fields or a non-image avatar
// - 409 when the email is already registered
// - 201 with the new user and a token on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name, email and password are required"})
		return
	}

	avatar, err := platformhandler.ReadImage(c, avatarField, h.maxUploadBytes)
	if err != nil {
		status, msg := platformhandler.UploadErrorStatus(err)
		slog.Warn("signup avatar rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Headline: req.Headline,
		Bio:      req.Bio,
		Avatar:   avatar,
	})
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respondError(c, "signup", err)
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}

// Login handles POST /auth/login.
// - 400 on missing fields
// - 401 on unknown email or wrong password, with the same body for both
// - 200 with the user and a token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email and password are required"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Do not reveal which of email or password was wrong.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respondError(c, "login", err)
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}

// GetProfile handles GET /auth/profile for the authenticated caller.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{User: dto.NewUserRes(user)})
}

// UpdateProfile handles PUT /auth/profile. Only name and bio can change.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", caller.ID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), caller.ID, entity.ProfileUpdate{Name: req.Name, Bio: req.Bio})
	if err != nil {
		respondError(c, "update profile", err)
		return
	}

	slog.Info("profile updated", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.ProfileRes{User: dto.NewUserRes(user)})
}
