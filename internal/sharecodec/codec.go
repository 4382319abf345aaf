// Package sharecodec turns a checklist into a URL-safe token and back.
//
// The token carries only what a recipient needs (text and completion);
// ids are local and are minted fresh on import.
package sharecodec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/model"
)

const (
	// Title is written into every payload.
	Title = "Listy"
	// QueryKey is the URL query parameter holding the token.
	QueryKey = "list"
)

var (
	// ErrEmptyList is returned by Encode for a list with no items.
	ErrEmptyList = errors.New("cannot share an empty list")
	// ErrCorrupt wraps every Decode failure.
	ErrCorrupt = errors.New("corrupt share data")
)

// Payload is the wire shape of a shared list.
type Payload struct {
	Title string        `json:"title"`
	Items []PayloadItem `json:"items"`
}

// PayloadItem is one shared entry.
type PayloadItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Encode builds the payload for items and returns it as unpadded URL-safe
// base64.
func Encode(items []model.Item) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyList
	}
	p := Payload{Title: Title, Items: make([]PayloadItem, 0, len(items))}
	for _, it := range items {
		p.Items = append(p.Items, PayloadItem{Text: it.Text, Completed: it.Completed})
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses token and returns the items it carries, each with a new id
// from gen. It either returns every item or an error wrapping ErrCorrupt.
func Decode(token string, gen ids.Generator) ([]model.Item, error) {
	if gen == nil {
		gen = ids.UUID{}
	}
	raw, err := decodeBase64(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	rawItems, ok := top["items"]
	if !ok {
		return nil, fmt.Errorf("%w: missing items", ErrCorrupt)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(rawItems, &elems); err != nil || elems == nil {
		return nil, fmt.Errorf("%w: items is not a list", ErrCorrupt)
	}

	out := make([]model.Item, 0, len(elems))
	for i, el := range elems {
		var fields struct {
			Text      json.RawMessage `json:"text"`
			Completed json.RawMessage `json:"completed"`
		}
		if err := json.Unmarshal(el, &fields); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, err)
		}
		text, err := decodeText(fields.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, err)
		}
		if text == "" {
			continue
		}
		out = append(out, model.Item{
			ID:        gen.NewID(),
			Text:      text,
			Completed: truthy(fields.Completed),
		})
	}
	return out, nil
}

// decodeBase64 accepts the URL-safe alphabet we emit as well as the standard
// one. Query parsing turns '+' into ' ', so spaces are mapped back first.
func decodeBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func decodeText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("text: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// truthy coerces any JSON value to a bool: false, null, 0, "" and a missing
// value are false; everything else is true.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
