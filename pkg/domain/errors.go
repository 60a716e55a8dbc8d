package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrCatalogLoad is returned when a catalog source is missing or malformed.
var ErrCatalogLoad = errors.New("catalog load failed")

// ErrEmptyCatalog is returned when a catalog source decodes to zero records.
var ErrEmptyCatalog = errors.New("catalog has no records")

// ErrInvalidMoney is returned when a currency cell holds no usable number.
var ErrInvalidMoney = errors.New("invalid currency amount")

// ErrInvalidPendingMode is returned when decoding an unknown pending mode.
var ErrInvalidPendingMode = errors.New("invalid pending mode")

// ErrRecordNotFound is returned when no catalog record matches a name query.
var ErrRecordNotFound = errors.New("college not found")
