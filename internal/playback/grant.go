package playback

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Grant is the decoded form of a signing response. The backend's response
// shape is not fixed, so every possible shape maps to exactly one of the
// three variants; UnrecognizedGrant is a reachable, handled state rather
// than a decoding error.
type Grant interface {
	grant()
}

// DirectURLGrant is a signing response carrying a ready-to-use URL
type DirectURLGrant struct {
	URL string
}

// TokenGrant is a signing response carrying a token/expires pair from
// which the embed URL is constructed
type TokenGrant struct {
	Token     string
	Expires   int64
	VideoID   string
	LibraryID string
}

// UnrecognizedGrant is a signing response matching neither known shape
type UnrecognizedGrant struct {
	Raw json.RawMessage
}

func (DirectURLGrant) grant()    {}
func (TokenGrant) grant()        {}
func (UnrecognizedGrant) grant() {}

// flexInt64 decodes an integer that the backend sends either as a JSON
// number or as a string
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Tolerate fractional timestamps
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		n = int64(fl)
	}
	*f = flexInt64(n)
	return nil
}

// grantEnvelope covers every field any backend version has been seen to
// return for a signing request
type grantEnvelope struct {
	SignedURL string    `json:"signedUrl"`
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	Expires   flexInt64 `json:"expires"`
	VideoID   string    `json:"videoId"`
	LibraryID string    `json:"libraryId"`
}

// DecodeGrant decodes a signing response body, applying the fallback
// order: direct URL field (or the whole body being a URL string), then a
// token/expires pair, then unrecognized.
func DecodeGrant(raw json.RawMessage) Grant {
	// The whole response may be a bare URL string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if looksLikeURL(s) {
			return DirectURLGrant{URL: s}
		}
		return UnrecognizedGrant{Raw: raw}
	}

	var env grantEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return UnrecognizedGrant{Raw: raw}
	}

	// A direct URL takes precedence even when token fields are present
	if env.SignedURL != "" {
		return DirectURLGrant{URL: env.SignedURL}
	}
	if env.URL != "" {
		return DirectURLGrant{URL: env.URL}
	}

	if env.Token != "" && env.Expires != 0 {
		return TokenGrant{
			Token:     env.Token,
			Expires:   int64(env.Expires),
			VideoID:   env.VideoID,
			LibraryID: env.LibraryID,
		}
	}

	return UnrecognizedGrant{Raw: raw}
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
