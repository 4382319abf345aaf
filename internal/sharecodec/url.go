package sharecodec

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL returns base (origin and path only) with the token attached as
// the list query parameter.
func ShareURL(base, token string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = url.Values{QueryKey: []string{token}}.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// IsLink reports whether raw looks like a URL or query string rather than a
// bare token.
func IsLink(raw string) bool {
	return strings.Contains(raw, "?") || strings.Contains(raw, "://")
}

// TokenFromURL extracts the list parameter from raw. A value that is not a
// link is taken to be a bare token. A blank token counts as absent.
func TokenFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !IsLink(raw) {
		return raw, true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	tok := u.Query().Get(QueryKey)
	if strings.TrimSpace(tok) == "" {
		return "", false
	}
	return tok, true
}

// StripToken returns raw without its list parameter, leaving other
// parameters in place.
func StripToken(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Del(QueryKey)
	u.RawQuery = q.Encode()
	return u.String()
}
