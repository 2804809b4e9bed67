package github

import (
	"regexp"

	ferrors "github.com/matzehuels/folio/pkg/errors"
)

// GitHub usernames: 1-39 alphanumeric or hyphen, not starting with hyphen.
var validHandle = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// ValidateHandle checks that handle is a syntactically valid GitHub login.
// The client itself accepts any string and escapes it; this check is for
// request edges that should reject garbage before spending an API call.
func ValidateHandle(handle string) error {
	if handle == "" {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "github handle is required")
	}
	if !validHandle.MatchString(handle) {
		return ferrors.New(ferrors.ErrCodeInvalidInput,
			"invalid github handle %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", handle)
	}
	return nil
}
