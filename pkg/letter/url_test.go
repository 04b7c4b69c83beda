package letter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToURLRoundTrip(t *testing.T) {
	l := sampleLetter()

	link, err := ToURL("https://letters.example.com/app/write.html?draft=1#top", l, "")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "letters.example.com", u.Host)
	assert.Equal(t, "/app/view.html", u.Path)
	assert.Empty(t, u.Fragment)
	assert.Empty(t, u.Query().Get("draft"), "the base query is replaced")
	assert.Empty(t, u.Query().Get("phone"), "empty fields are not encoded")

	decoded, ok := FromQuery(u.Query())
	require.True(t, ok)
	assert.Equal(t, l, decoded)
}

func TestToURLPage(t *testing.T) {
	tests := []struct {
		base string
		page string
		want string
	}{
		{"https://x.test/", "edit.html", "https://x.test/edit.html?subject=Hi"},
		{"https://x.test/a/b/index.html", "/view.html", "https://x.test/a/b/view.html?subject=Hi"},
		{"https://x.test", "", "https://x.test/view.html?subject=Hi"},
	}

	for _, tt := range tests {
		got, err := ToURL(tt.base, Letter{Subject: "Hi"}, tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestToURLBadBase(t *testing.T) {
	_, err := ToURL("://nope", Letter{Subject: "Hi"}, "")
	assert.Error(t, err)
}

func TestFromQueryEmpty(t *testing.T) {
	_, ok := FromQuery(url.Values{"receiverName": {"Jiwoo"}})
	assert.False(t, ok, "a letter needs a subject or content")

	l, ok := FromQuery(url.Values{"content": {"/{Dice}"}})
	assert.True(t, ok)
	assert.Equal(t, "/{Dice}", l.Content)

	l, ok = FromQuery(url.Values{"subject": {" "}})
	assert.True(t, ok, "a whitespace subject still counts")
	assert.Equal(t, " ", l.Subject)
}
