package app

import (
	"strings"
	"sync"

	"github.com/Makepad-fr/listy/internal/sharecodec"
)

// Location is where a share token may arrive at startup.
type Location interface {
	// ShareToken returns the token, if one is present.
	ShareToken() (string, bool)
	// ClearShareToken drops the token without navigating anywhere.
	ClearShareToken()
}

// URLLocation reads the token from the list query parameter of a URL.
type URLLocation struct {
	mu  sync.Mutex
	raw string
}

func NewURLLocation(raw string) *URLLocation {
	return &URLLocation{raw: strings.TrimSpace(raw)}
}

func (l *URLLocation) ShareToken() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !sharecodec.IsLink(l.raw) {
		return "", false
	}
	return sharecodec.TokenFromURL(l.raw)
}

func (l *URLLocation) ClearShareToken() {
	l.mu.Lock()
	l.raw = sharecodec.StripToken(l.raw)
	l.mu.Unlock()
}

// URL is the current location.
func (l *URLLocation) URL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.raw
}

// TokenLocation carries a bare token, e.g. one pasted on the command line.
type TokenLocation struct {
	Token   string
	cleared bool
}

func (l *TokenLocation) ShareToken() (string, bool) {
	if l.cleared || strings.TrimSpace(l.Token) == "" {
		return "", false
	}
	return l.Token, true
}

func (l *TokenLocation) ClearShareToken() { l.cleared = true }

// LocationFromArg accepts either a share URL or a bare token.
func LocationFromArg(arg string) Location {
	arg = strings.TrimSpace(arg)
	if sharecodec.IsLink(arg) {
		return NewURLLocation(arg)
	}
	return &TokenLocation{Token: arg}
}
