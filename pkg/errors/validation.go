package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordLength bounds the text of a single word accepted at the boundary.
const MaxWordLength = 256

// ValidateWordText validates the text of an input word.
// Empty text is allowed; the layout only counts words and never reads the
// text. Rejected are:
//   - Text longer than MaxWordLength runes
//   - Invalid UTF-8
//   - Control characters, which would corrupt SVG labels
func ValidateWordText(text string) error {
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "word text is not valid UTF-8")
	}

	if utf8.RuneCountInString(text) > MaxWordLength {
		return New(ErrCodeInvalidInput, "word text too long (max %d characters)", MaxWordLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word text contains invalid control characters")
		}
	}

	return nil
}

// ValidateNodeCount checks a requested node count against an upper bound.
// Zero and negative counts are accepted because the layout treats them as a
// single node.
func ValidateNodeCount(n, limit int) error {
	if n > limit {
		return New(ErrCodeTooLarge, "node count %d exceeds limit of %d", n, limit)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS hex color such as "#4caf50".
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", color)
	}
	return nil
}

// ValidateKeyName validates a cache key or namespace for safety.
// Keys end up as file names in the file cache, so anything that could be
// used for path traversal is rejected:
//   - No empty keys
//   - No control characters or null bytes
//   - No "..", "//" or backslashes
//   - Maximum length of 256 characters
func ValidateKeyName(key string) error {
	if key == "" {
		return New(ErrCodeInvalidPath, "key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidPath, "key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "key contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidPath, "key contains invalid characters: %q", pattern)
		}
	}

	return nil
}
