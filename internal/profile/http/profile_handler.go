// Package http provides HTTP handlers for profile operations.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/httputil"
	"github.com/socioclub/membership/internal/profile/http/dto"
	"github.com/socioclub/membership/internal/profile/usecase"
)

// maxPhotoSizeBytes caps profile photo uploads at 5 MiB.
const maxPhotoSizeBytes = 5 << 20

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	profileUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileUseCase usecase.UseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a profile for an existing user.
// POST /v1/profiles
// Returns 201 Created with the profile.
func (h *ProfileHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input, err := dto.ToCreateProfileInput(req)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.CreateProfile(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// GetHandler retrieves a profile by ID.
// GET /v1/profiles/:id
func (h *ProfileHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// GetByUserHandler retrieves the profile linked to a user.
// GET /v1/users/:id/profile
func (h *ProfileHandler) GetByUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateHandler applies the mutable profile fields.
// PUT /v1/profiles/:id
func (h *ProfileHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.UpdateProfile(c.Request.Context(), id, dto.ToUpdateProfileInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// AttachPhotoHandler stores an uploaded photo and links it to the profile.
// PUT /v1/profiles/:id/photo - multipart form with a "photo" file field.
func (h *ProfileHandler) AttachPhotoHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("photo file field is required: %w", err), h.logger)
		return
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("photo exceeds the maximum size of %d bytes", maxPhotoSizeBytes),
			h.logger,
		)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSizeBytes))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := usecase.AttachPhotoInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	profile, err := h.profileUseCase.AttachPhoto(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
