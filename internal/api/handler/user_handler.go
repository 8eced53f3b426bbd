package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
	"github.com/ucspstream/streaming-api/internal/infrastructure/storage"
)

// UserHandler handles HTTP requests for profile and user administration.
type UserHandler struct {
	service ports.UserService
	uploads ports.UploadGateway
}

func NewUserHandler(service ports.UserService, uploads ports.UploadGateway) *UserHandler {
	return &UserHandler{service: service, uploads: uploads}
}

type updateProfileRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
	Website   string `json:"website"`
	Instagram string `json:"instagram"`
}

type userStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// Profile handles GET /api/users/profile. An admin may pass ?user_id= to
// read another account.
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), claims, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), claims, c.QueryParam("user_id"), domain.Profile{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Website:   req.Website,
		Instagram: req.Instagram,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UploadPicture handles POST /api/users/profile/picture: stores the image
// through the upload gateway and attaches the reference to the profile.
func (h *UserHandler) UploadPicture(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(storage.FieldProfilePicture)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "profile_picture file required")
	}

	ref, err := storeUpload(c, h.uploads, storage.FieldProfilePicture, fh)
	if err != nil {
		return err
	}

	user, err := h.service.SetProfilePicture(c.Request().Context(), claims, claims.UserID, ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeletePicture handles DELETE /api/users/profile/picture.
func (h *UserHandler) DeletePicture(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.SetProfilePicture(c.Request().Context(), claims, claims.UserID, "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/admin/users.
func (h *UserHandler) ListUsers(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// SetUserStatus handles PUT /api/admin/users/:id/status.
func (h *UserHandler) SetUserStatus(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req userStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetUserStatus(c.Request().Context(), claims, c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}
