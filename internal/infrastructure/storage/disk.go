// Package storage implements the upload gateway: validated, disk-backed
// persistence of binary payloads. Payloads are validated against a per-field
// media-type allow-list and a size ceiling; the bytes themselves are never
// inspected or transformed.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

// Upload field names, matching the multipart form fields of the API.
const (
	FieldMusic          = "music_file"
	FieldMovie          = "movie_file"
	FieldBook           = "book_file"
	FieldThumbnail      = "thumbnail"
	FieldProfilePicture = "profile_picture"
)

// MaxFileSize is the per-payload ceiling.
const MaxFileSize = 100 << 20 // 100 MiB

// MaxFilesPerRequest caps how many payloads one request may carry.
const MaxFilesPerRequest = 5

var imageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

// allowedTypes keys each upload field to its media-type allow-list.
// Note image/svg+xml is deliberately absent.
var allowedTypes = map[string][]string{
	FieldMusic:          {"audio/mpeg", "audio/mp3", "audio/wav", "audio/flac", "audio/m4a"},
	FieldMovie:          {"video/mp4", "video/avi", "video/x-matroska", "video/quicktime", "video/webm"},
	FieldBook:           {"application/pdf", "application/epub+zip"},
	FieldThumbnail:      imageTypes,
	FieldProfilePicture: imageTypes,
}

// subdirs maps each field to its storage subdirectory.
var subdirs = map[string]string{
	FieldMusic:          "music",
	FieldMovie:          "movies",
	FieldBook:           "books",
	FieldThumbnail:      "thumbnails",
	FieldProfilePicture: "profile_pictures",
}

// FieldForType returns the upload field a content type's binary must arrive
// on.
func FieldForType(t domain.ContentType) string {
	switch t {
	case domain.TypeMusic:
		return FieldMusic
	case domain.TypeMovie:
		return FieldMovie
	case domain.TypeBook:
		return FieldBook
	}
	return ""
}

// DiskGateway persists payloads under a base directory, one subdirectory per
// upload kind, each file under a collision-resistant generated name.
type DiskGateway struct {
	baseDir string
	logger  zerolog.Logger
}

// NewDiskGateway creates the per-kind subdirectories under baseDir.
func NewDiskGateway(baseDir string, logger zerolog.Logger) (*DiskGateway, error) {
	for _, sub := range subdirs {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &DiskGateway{baseDir: baseDir, logger: logger}, nil
}

// Store validates and persists a single payload, returning its storage
// reference (path relative to the base directory).
func (g *DiskGateway) Store(ctx context.Context, in ports.UploadInput) (string, error) {
	sub, ok := subdirs[in.Field]
	if !ok {
		return "", fmt.Errorf("%w: unknown upload field %q", domain.ErrUnsupportedMediaType, in.Field)
	}
	if !typeAllowed(in.Field, in.ContentType) {
		return "", fmt.Errorf("%w: %s not accepted for %s", domain.ErrUnsupportedMediaType, in.ContentType, in.Field)
	}
	if in.Size > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes exceeds limit", domain.ErrPayloadTooLarge, in.Size)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(in.Filename)
	ref := filepath.Join(sub, name)
	dst := filepath.Join(g.baseDir, ref)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// Copy with a hard cap so a lying Content-Length cannot blow past the
	// ceiling.
	written, err := io.Copy(f, io.LimitReader(in.Reader, MaxFileSize+1))
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > MaxFileSize {
		_ = os.Remove(dst)
		return "", fmt.Errorf("%w: exceeds %d bytes", domain.ErrPayloadTooLarge, int64(MaxFileSize))
	}

	g.logger.Debug().
		Str("field", in.Field).
		Str("ref", ref).
		Int64("bytes", written).
		Msg("payload stored")

	return ref, nil
}

func typeAllowed(field, contentType string) bool {
	for _, t := range allowedTypes[field] {
		if t == contentType {
			return true
		}
	}
	return false
}
