package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateInput checks a caller-supplied value for safety before it is
// parsed or placed into an upstream URL.
//
// The rules are intentionally conservative:
//   - No empty values (after trimming whitespace)
//   - No control characters or null bytes
//   - At most maxLen bytes (maxLen <= 0 disables the check)
//
// Rejections quote the value, truncated, so the message names the input.
// The returned error carries code, so callers can map it onto their own
// taxonomy (INVALID_INPUT for handles, INVALID_TARGET for gateway URLs).
func ValidateInput(code Code, field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return New(code, "%s cannot be empty", field)
	}

	if maxLen > 0 && len(value) > maxLen {
		return New(code, "%s %q too long (max %d characters)", field, truncateInput(value), maxLen)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(code, "%s %q contains invalid control characters", field, truncateInput(value))
		}
	}

	return nil
}

// maxEchoedInput bounds how much of a rejected value is echoed in messages.
const maxEchoedInput = 64

func truncateInput(value string) string {
	if len(value) <= maxEchoedInput {
		return value
	}
	cut := maxEchoedInput
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}
