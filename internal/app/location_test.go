package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationFromArg(t *testing.T) {
	loc := LocationFromArg("https://listy.app/?list=abc&x=1")
	tok, ok := loc.ShareToken()
	require.True(t, ok)
	require.Equal(t, "abc", tok)
	loc.ClearShareToken()
	_, ok = loc.ShareToken()
	require.False(t, ok)
	require.Equal(t, "https://listy.app/?x=1", loc.(*URLLocation).URL())

	bare := LocationFromArg("  abc ")
	tok, ok = bare.ShareToken()
	require.True(t, ok)
	require.Equal(t, "abc", tok)
	bare.ClearShareToken()
	_, ok = bare.ShareToken()
	require.False(t, ok)

	_, ok = LocationFromArg("").ShareToken()
	require.False(t, ok)
	_, ok = LocationFromArg("https://listy.app/").ShareToken()
	require.False(t, ok)
	_, ok = LocationFromArg("https://listy.app/?list=").ShareToken()
	require.False(t, ok)
	_, ok = NewURLLocation("").ShareToken()
	require.False(t, ok)
}

func TestNoticeText(t *testing.T) {
	for k := NoticeEmptyShare; k <= NoticeSaveFailed; k++ {
		n := newNotice(k)
		require.NotEmpty(t, n.Text, k.String())
		require.NotEqual(t, "unknown", k.String())
	}
	require.True(t, newNotice(NoticeImportCorrupt).Error)
	require.False(t, newNotice(NoticeImported).Error)
}
