package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ucspstream/streaming-api/internal/api/metrics"
	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
	"github.com/ucspstream/streaming-api/internal/infrastructure/storage"
)

// Route-level listing defaults mirrored from the product's dashboard: the
// general listing shows 20, "recommended" 4, "recent" 6. These are call-site
// choices, not service invariants.
const (
	recommendedLimit = 4
	recentLimit      = 6
)

// ContentHandler handles HTTP requests for content operations.
type ContentHandler struct {
	service ports.ContentService
	uploads ports.UploadGateway
}

func NewContentHandler(service ports.ContentService, uploads ports.UploadGateway) *ContentHandler {
	return &ContentHandler{service: service, uploads: uploads}
}

type createContentRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type"        validate:"required,oneof=music movie book"`
	Genre       string `json:"genre"`
	Duration    string `json:"duration"`
	FilePath    string `json:"file_path"   validate:"required"`
	Thumbnail   string `json:"thumbnail"`
}

type moderationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// List handles GET /api/content.
//
// @Summary      List approved content
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        type   query     string  false  "music, movie, or book"
// @Param        limit  query     int     false  "maximum records (default 20)"
// @Success      200    {array}   domain.Content
// @Failure      401    {object}  map[string]string
// @Failure      503    {object}  map[string]string
// @Router       /api/content [get]
func (h *ContentHandler) List(c echo.Context) error {
	return h.list(c, 0)
}

// Recommended handles GET /api/content/recommended.
func (h *ContentHandler) Recommended(c echo.Context) error {
	return h.list(c, recommendedLimit)
}

// Recent handles GET /api/content/recent.
func (h *ContentHandler) Recent(c echo.Context) error {
	return h.list(c, recentLimit)
}

func (h *ContentHandler) list(c echo.Context, fixedLimit int) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit := fixedLimit
	if limit == 0 {
		if raw := c.QueryParam("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
			}
		}
	}

	items, err := h.service.List(c.Request().Context(), claims, ports.ListContentFilter{
		Type:  domain.ContentType(c.QueryParam("type")),
		Limit: limit,
	})
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Content{}
	}
	return c.JSON(http.StatusOK, items)
}

// Mine handles GET /api/content/mine. The artist_id parameter is restricted
// to the caller's own id unless the caller is an admin.
func (h *ContentHandler) Mine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListMine(c.Request().Context(), claims, c.QueryParam("artist_id"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Content{}
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/content, the JSON path, used when the binary was
// uploaded beforehand or lives at an external URL.
//
// @Summary      Create a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContentRequest  true  "Content metadata"
// @Success      201   {object}  domain.Content
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/content [post]
func (h *ContentHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content, err := h.service.Create(c.Request().Context(), claims, ports.CreateContentInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.ContentType(req.Type),
		Genre:       req.Genre,
		Duration:    req.Duration,
		FilePath:    req.FilePath,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		return err
	}

	metrics.ContentCreatedTotal.WithLabelValues(string(content.Type), string(content.Status)).Inc()
	return c.JSON(http.StatusCreated, content)
}

// Upload handles POST /api/content/upload: multipart metadata plus the
// binary payload (and an optional thumbnail), routed through the upload
// gateway before the record is created.
//
// @Summary      Upload content with its binary payload
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.Content
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      415  {object}  map[string]string
// @Router       /api/content/upload [post]
func (h *ContentHandler) Upload(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	if n := countFiles(form); n > storage.MaxFilesPerRequest {
		metrics.UploadsRejectedTotal.WithLabelValues("too_many_files").Inc()
		return domain.ErrPayloadTooLarge
	}

	contentType := domain.ContentType(formValue(form, "type"))
	field := storage.FieldForType(contentType)
	if field == "" {
		return domain.ErrInvalidContentType
	}

	fileRef, err := h.storeFirst(c, form, field)
	if err != nil {
		return err
	}
	if fileRef == "" {
		return domain.ErrMissingPayload
	}

	thumbRef, err := h.storeFirst(c, form, storage.FieldThumbnail)
	if err != nil {
		return err
	}

	content, err := h.service.Create(c.Request().Context(), claims, ports.CreateContentInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Type:        contentType,
		Genre:       formValue(form, "genre"),
		Duration:    formValue(form, "duration"),
		FilePath:    fileRef,
		Thumbnail:   thumbRef,
	})
	if err != nil {
		return err
	}

	metrics.ContentCreatedTotal.WithLabelValues(string(content.Type), string(content.Status)).Inc()
	return c.JSON(http.StatusCreated, content)
}

// ListPending handles GET /api/admin/content/pending.
func (h *ContentHandler) ListPending(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListPending(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Content{}
	}
	return c.JSON(http.StatusOK, items)
}

// SetStatus handles PUT /api/admin/content/:id/status.
//
// @Summary      Apply a moderation decision
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Content id"
// @Param        body  body      moderationRequest  true  "approved or rejected"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/content/{id}/status [put]
func (h *ContentHandler) SetStatus(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req moderationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.ModerationStatus(req.Status)
	if err := h.service.SetModerationStatus(c.Request().Context(), claims, c.Param("id"), status); err != nil {
		return err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

// storeFirst stores the first file present under field, returning its storage
// reference or "" when the field is absent.
func (h *ContentHandler) storeFirst(c echo.Context, form *multipart.Form, field string) (string, error) {
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	return storeUpload(c, h.uploads, field, files[0])
}

func countFiles(form *multipart.Form) int {
	n := 0
	for _, files := range form.File {
		n += len(files)
	}
	return n
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// storeUpload opens a multipart file header and hands it to the gateway,
// translating rejections into upload metrics.
func storeUpload(c echo.Context, gw ports.UploadGateway, field string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	ref, err := gw.Store(c.Request().Context(), ports.UploadInput{
		Field:       field,
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    fh.Filename,
		Size:        fh.Size,
		Reader:      f,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedMediaType):
			metrics.UploadsRejectedTotal.WithLabelValues("unsupported_media_type").Inc()
		case errors.Is(err, domain.ErrPayloadTooLarge):
			metrics.UploadsRejectedTotal.WithLabelValues("payload_too_large").Inc()
		}
		return "", err
	}

	metrics.UploadBytes.Observe(float64(fh.Size))
	return ref, nil
}
