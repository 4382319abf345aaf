package sharecodec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/model"
)

func TestEncodeEmptyList(t *testing.T) {
	tok, err := Encode(nil)
	require.ErrorIs(t, err, ErrEmptyList)
	require.Empty(t, tok)

	_, err = Encode([]model.Item{})
	require.ErrorIs(t, err, ErrEmptyList)
}

func TestEncodePayloadShape(t *testing.T) {
	tok, err := Encode([]model.Item{
		{ID: "secret-id", Text: "a", Completed: true},
		{ID: "other", Text: "b"},
	})
	require.NoError(t, err)
	require.NotContains(t, tok, "=")
	require.Equal(t, tok, url.QueryEscape(tok), "token must be URL safe")

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Listy","items":[{"text":"a","completed":true},{"text":"b","completed":false}]}`, string(raw))
	require.NotContains(t, string(raw), "secret-id")
}

func TestRoundTripAssignsNewIDs(t *testing.T) {
	s := checklist.New(ids.NewSequence("orig"))
	a, _ := s.Add("Buy milk")
	s.Add("Walk the dog & <cat>")
	s.Toggle(a.ID)
	orig := s.Items()

	tok, err := Encode(orig)
	require.NoError(t, err)

	// a second session with its own generator
	got, err := Decode(tok, ids.NewSequence("imported"))
	require.NoError(t, err)
	require.Len(t, got, len(orig))
	for i := range orig {
		require.Equal(t, orig[i].Text, got[i].Text)
		require.Equal(t, orig[i].Completed, got[i].Completed)
		require.NotEqual(t, orig[i].ID, got[i].ID)
	}
	require.NotEqual(t, got[0].ID, got[1].ID)
}

func TestDecodeFailures(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	cases := map[string]string{
		"not base64":       "not-a-valid-token!!",
		"plain garbage":    "not-a-valid-token",
		"empty":            "",
		"not json":         enc("hello"),
		"missing items":    enc(`{"title":"Listy"}`),
		"items not a list": enc(`{"items":{"text":"a"}}`),
		"items null":       enc(`{"items":null}`),
		"item not object":  enc(`{"items":["a"]}`),
		"text not string":  enc(`{"items":[{"text":3}]}`),
		"top level array":  enc(`[{"text":"a"}]`),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			items, err := Decode(tok, ids.NewSequence("x"))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
			require.Nil(t, items)
		})
	}
}

func TestDecodeIgnoresPayloadIDsAndCoercesCompleted(t *testing.T) {
	body := `{"title":"whatever","items":[
		{"id":"evil","text":"  a  ","completed":1},
		{"id":"evil","text":"b","completed":"yes"},
		{"text":"c","completed":0},
		{"text":"d"},
		{"text":"e","completed":null},
		{"text":"   "},
		{"completed":true}
	]}`
	tok := base64.StdEncoding.EncodeToString([]byte(body))
	got, err := Decode(tok, ids.NewSequence("n"))
	require.NoError(t, err)
	require.Equal(t, []model.Item{
		{ID: "n-1", Text: "a", Completed: true},
		{ID: "n-2", Text: "b", Completed: true},
		{ID: "n-3", Text: "c"},
		{ID: "n-4", Text: "d"},
		{ID: "n-5", Text: "e"},
	}, got)
}

func TestDecodeAcceptsStdBase64WithSpaces(t *testing.T) {
	// "?>" encodes with '+' and '/' in the standard alphabet.
	body, err := json.Marshal(Payload{Title: Title, Items: []PayloadItem{{Text: "??>>??>>"}}})
	require.NoError(t, err)
	std := base64.StdEncoding.EncodeToString(body)

	// simulate a query string that decoded '+' to ' '
	mangled := ""
	for _, r := range std {
		if r == '+' {
			mangled += " "
			continue
		}
		mangled += string(r)
	}

	got, err := Decode(mangled, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "??>>??>>", got[0].Text)
}

func TestDecodeEmptyItemsList(t *testing.T) {
	tok := base64.RawURLEncoding.EncodeToString([]byte(`{"title":"Listy","items":[]}`))
	got, err := Decode(tok, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
