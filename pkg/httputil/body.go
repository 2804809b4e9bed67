package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"
)

// MaxBodySize bounds how much of a response body is read into memory.
const MaxBodySize = 8 << 20

// ReadBody reads at most [MaxBodySize] bytes from r.
func ReadBody(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, MaxBodySize))
}

// Payload is a response body parsed leniently: if the bytes are valid JSON
// they are kept as JSON, otherwise the raw text stands in as the payload.
//
// This mirrors what a browser client does with a failed response: it tries
// JSON first and falls back to the text so the error message still shows
// something useful.
type Payload struct {
	JSON json.RawMessage // Non-nil when the body parsed as JSON
	Text string          // Raw body text (always set)
}

// ParsePayload classifies body as JSON or text.
// An empty or whitespace-only body yields the zero Payload.
func ParsePayload(body []byte) Payload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Payload{}
	}
	if json.Valid(trimmed) {
		return Payload{JSON: json.RawMessage(trimmed), Text: string(body)}
	}
	return Payload{Text: string(body)}
}

// IsJSON reports whether the payload parsed as JSON.
func (p Payload) IsJSON() bool { return p.JSON != nil }

// IsArray reports whether the payload is a JSON array.
func (p Payload) IsArray() bool { return p.IsJSON() && p.JSON[0] == '[' }

// IsObject reports whether the payload is a JSON object.
func (p Payload) IsObject() bool { return p.IsJSON() && p.JSON[0] == '{' }

// Excerpt renders the payload as a single string truncated to n characters.
//
// JSON strings are unquoted, other JSON values are compacted, and text is
// used verbatim. Truncation counts runes so multi-byte text is never split.
func (p Payload) Excerpt(n int) string {
	var s string
	switch {
	case p.IsJSON():
		var str string
		if err := json.Unmarshal(p.JSON, &str); err == nil {
			s = str
		} else {
			var buf bytes.Buffer
			if err := json.Compact(&buf, p.JSON); err == nil {
				s = buf.String()
			} else {
				s = string(p.JSON)
			}
		}
	default:
		s = p.Text
	}
	return truncate(strings.TrimSpace(s), n)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
