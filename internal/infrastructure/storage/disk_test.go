package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

func newTestGateway(t *testing.T) *DiskGateway {
	t.Helper()
	gw, err := NewDiskGateway(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDiskGateway: %v", err)
	}
	return gw
}

func payload(field, contentType, name string, data []byte) ports.UploadInput {
	return ports.UploadInput{
		Field:       field,
		ContentType: contentType,
		Filename:    name,
		Size:        int64(len(data)),
		Reader:      bytes.NewReader(data),
	}
}

func TestDiskGateway_StoresUnderKindSubdirectory(t *testing.T) {
	dir := t.TempDir()
	gw, err := NewDiskGateway(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDiskGateway: %v", err)
	}

	data := []byte("ID3 fake audio")
	ref, err := gw.Store(context.Background(), payload(FieldMusic, "audio/mpeg", "track.mp3", data))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !strings.HasPrefix(ref, "music"+string(filepath.Separator)) {
		t.Fatalf("ref %q not under music/", ref)
	}
	if filepath.Ext(ref) != ".mp3" {
		t.Fatalf("ref %q lost the original extension", ref)
	}

	stored, err := os.ReadFile(filepath.Join(dir, ref))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Fatalf("stored bytes differ from payload")
	}
}

func TestDiskGateway_GeneratedNamesDoNotCollide(t *testing.T) {
	gw := newTestGateway(t)

	refs := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		ref, err := gw.Store(context.Background(), payload(FieldThumbnail, "image/png", "cover.png", []byte{1}))
		if err != nil {
			t.Fatalf("Store %d failed: %v", i, err)
		}
		if _, dup := refs[ref]; dup {
			t.Fatalf("duplicate storage reference %q", ref)
		}
		refs[ref] = struct{}{}
	}
}

func TestDiskGateway_SVGThumbnailRejected(t *testing.T) {
	gw := newTestGateway(t)

	_, err := gw.Store(context.Background(), payload(FieldThumbnail, "image/svg+xml", "logo.svg", []byte("<svg/>")))
	if !errors.Is(err, domain.ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType for svg, got %v", err)
	}
}

func TestDiskGateway_TypeAllowListPerField(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	// audio type on the movie field is a mismatch even though both exist.
	if _, err := gw.Store(ctx, payload(FieldMovie, "audio/mpeg", "x.mp3", []byte{1})); !errors.Is(err, domain.ErrUnsupportedMediaType) {
		t.Fatalf("cross-field type: expected ErrUnsupportedMediaType, got %v", err)
	}
	if _, err := gw.Store(ctx, payload("evil_field", "image/png", "x.png", []byte{1})); !errors.Is(err, domain.ErrUnsupportedMediaType) {
		t.Fatalf("unknown field: expected ErrUnsupportedMediaType, got %v", err)
	}
	if _, err := gw.Store(ctx, payload(FieldBook, "application/pdf", "b.pdf", []byte{1})); err != nil {
		t.Fatalf("pdf on book field should pass: %v", err)
	}
}

func TestDiskGateway_DeclaredSizeAboveCeilingRejected(t *testing.T) {
	gw := newTestGateway(t)

	in := payload(FieldMusic, "audio/mpeg", "huge.mp3", []byte{1})
	in.Size = MaxFileSize + 1
	_, err := gw.Store(context.Background(), in)
	if !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestDiskGateway_FieldForType(t *testing.T) {
	cases := map[domain.ContentType]string{
		domain.TypeMusic: FieldMusic,
		domain.TypeMovie: FieldMovie,
		domain.TypeBook:  FieldBook,
		"podcast":        "",
	}
	for typ, want := range cases {
		if got := FieldForType(typ); got != want {
			t.Fatalf("FieldForType(%s) = %q, want %q", typ, got, want)
		}
	}
}
