package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/immodash/immodash/pkg/serrors"
)

// Parameter is the query parameter that mirrors the active selection.
const Parameter = "propertyId"

var (
	ErrRequired = serrors.NewError("IDENTITY_REQUIRED", "an identifier is required", "Identity.Required")
	ErrInvalid  = serrors.NewError("IDENTITY_INVALID", "malformed identifier", "Identity.Invalid")
)

// Normalize canonicalizes an untrusted identifier value. It returns the
// lowercased canonical form, or "" when the value is not a syntactically
// valid identifier. It never fails: malformed input maps to "".
//
// Accepted values are strings of 32 hex digits grouped 8-4-4-4-12 with a
// version nibble of 1-5 and an RFC 4122 variant nibble. The literals
// "null" and "undefined" (any letter case) are treated as absent, since
// upstream form layers are known to stringify missing values.
func Normalize(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch strings.ToLower(s) {
	case "null", "undefined":
		return ""
	}
	id, err := parseCanonical(s)
	if err != nil {
		return ""
	}
	return id.String()
}

// Required is the assertive variant of Normalize for call sites where an
// identifier must be present. It reports ErrRequired for absent values
// and ErrInvalid for present but malformed ones.
func Required(raw any) (uuid.UUID, error) {
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, ErrRequired
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, ErrRequired
	}
	switch strings.ToLower(s) {
	case "null", "undefined":
		return uuid.Nil, ErrRequired
	}
	id, err := parseCanonical(s)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}

func parseCanonical(s string) (uuid.UUID, error) {
	// uuid.Parse also accepts urn: prefixes, braces and undashed hex;
	// the canonical format is strictly 8-4-4-4-12.
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.Nil, ErrInvalid
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if v := id.Version(); v < 1 || v > 5 {
		return uuid.Nil, ErrInvalid
	}
	if id.Variant() != uuid.RFC4122 {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}
