package gateway

import (
	"net"
	"net/url"
	"strings"

	ferrors "github.com/matzehuels/folio/pkg/errors"
)

// Target is an absolute http or https URL in canonical form.
// The zero Target means no usable target was supplied.
type Target string

// String returns the URL text.
func (t Target) String() string { return string(t) }

// IsZero reports whether t is the absent target.
func (t Target) IsZero() bool { return t == "" }

// MaxTargetLength bounds the raw target accepted by [Normalize].
const MaxTargetLength = 2048

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Normalize validates raw and returns its canonical form.
//
// Only absolute http and https URLs with a host are accepted; anything else
// fails with INVALID_TARGET and a message naming the offending input. The
// canonical form lowercases scheme and host, drops the scheme's default
// port and turns an empty path into "/". Slashes between the scheme and
// the host are optional, so "http:example.com" is "http://example.com/".
func Normalize(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ferrors.New(ferrors.ErrCodeInvalidTarget, "no target supplied, pass one as ?target=<url>")
	}
	if err := ferrors.ValidateInput(ferrors.ErrCodeInvalidTarget, "target", raw, MaxTargetLength); err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ferrors.Wrap(ferrors.ErrCodeInvalidTarget, err, "invalid target %q: not a url", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme == "" {
		return "", ferrors.New(ferrors.ErrCodeInvalidTarget, "invalid target %q: not an absolute url", raw)
	}
	if _, ok := defaultPorts[u.Scheme]; !ok {
		return "", ferrors.New(ferrors.ErrCodeInvalidTarget, "invalid target %q: scheme %q is not http or https", raw, u.Scheme)
	}
	if u.Host == "" {
		// "http:host" and "http:/host" name a host just like "http://host".
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], `/\`)
		if rest == "" {
			return "", ferrors.New(ferrors.ErrCodeInvalidTarget, "invalid target %q: missing host", raw)
		}
		if u, err = url.Parse(u.Scheme + "://" + rest); err != nil {
			return "", ferrors.Wrap(ferrors.ErrCodeInvalidTarget, err, "invalid target %q: not a url", raw)
		}
	}
	if u.Hostname() == "" {
		return "", ferrors.New(ferrors.ErrCodeInvalidTarget, "invalid target %q: missing host", raw)
	}

	u.Host = canonicalHost(u)
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return Target(u.String()), nil
}

func canonicalHost(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == defaultPorts[u.Scheme] {
		port = ""
	}
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}
