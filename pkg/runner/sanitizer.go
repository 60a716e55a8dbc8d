package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "INFOBOT_MAX_INPUT_SIZE"
)

// maxInputOverride, when positive, takes precedence over the environment.
var maxInputOverride atomic.Int64

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SetMaxInputSize overrides the size limit for every transport. Zero restores the default.
func SetMaxInputSize(n int) {
	maxInputOverride.Store(int64(n))
}

// MaxInputSize returns the limit in effect.
func MaxInputSize() int {
	if n := maxInputOverride.Load(); n > 0 {
		return int(n)
	}
	return getMaxInputSize()
}

// SanitizeInput cleans user input by enforcing size limits,
// validating UTF-8, and stripping terminal control characters.
func SanitizeInput(input string) (string, error) {
	// Oversized input is rejected, never truncated.
	limit := MaxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Newline, tab and carriage return survive; ESC, NUL, BEL and friends do not.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
