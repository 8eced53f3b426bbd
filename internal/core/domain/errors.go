package domain

import "errors"

// ErrStoreUnavailable signals that the persistence layer is unreachable.
// Callers surface it as a service-unavailable condition; there is no
// in-memory fallback.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrUnsupportedMediaType signals an upload whose declared media type is not
// in the allow-list for its field.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrPayloadTooLarge signals an upload above the size ceiling or a request
// carrying too many files.
var ErrPayloadTooLarge = errors.New("payload too large")
