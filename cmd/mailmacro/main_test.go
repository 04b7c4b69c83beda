package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-mailmacro/pkg/letter"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

func TestExpandOptionsProbe(t *testing.T) {
	p, err := expandOptions{userAgent: iphoneUA, screen: "390x844", dark: true}.probe()
	require.NoError(t, err)
	assert.Equal(t, probe.Static{UA: iphoneUA, Width: 390, Height: 844, Scheme: probe.SchemeDark}, p)

	for _, screen := range []string{"390", "axb", "390x", "-1x10"} {
		_, err := expandOptions{screen: screen}.probe()
		assert.Error(t, err, screen)
	}
}

func TestLoadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.yml")
	require.NoError(t, os.WriteFile(path, []byte("receiverName: 지민\nreceiverRole: 팀장\nsenderName: 수아\ncontent: hi\n"), 0o644))

	record, err := loadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, macro.Record{
		macro.FieldReceiverName: "지민",
		macro.FieldReceiverRole: "팀장",
		macro.FieldSenderName:   "수아",
		macro.FieldContent:      "hi",
	}, record)

	record, err = loadRecord("")
	require.NoError(t, err)
	assert.Empty(t, record)

	_, err = loadRecord(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("Dear /{name}"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("/{Device=mobile=phone}/{Device!=mobile=desk}\n"), 0o644))

	engine := macro.NewWithConfig(nil,
		macro.WithProbe(probe.Static{UA: iphoneUA}),
		macro.WithLookups(nil, nil),
		macro.WithLogger(macro.NewLogger(nil, macro.LogOff)),
	)
	record := macro.Record{macro.FieldReceiverName: "지민"}

	var out bytes.Buffer
	require.NoError(t, expandFiles(t.Context(), engine, &out, []string{a}, record))
	assert.Equal(t, "Dear 지민", out.String())

	out.Reset()
	require.NoError(t, expandFiles(t.Context(), engine, &out, []string{a, b}, record))
	assert.Equal(t, "==> "+a+" <==\nDear 지민\n==> "+b+" <==\nphone\n", out.String())

	assert.Error(t, expandFiles(t.Context(), engine, &out, []string{filepath.Join(dir, "nope")}, record))
}

func TestExpandHandler(t *testing.T) {
	engine := macro.NewWithConfig(&macro.Config{Locale: "ko"},
		macro.WithLookups(nil, nil),
		macro.WithLogger(macro.NewLogger(nil, macro.LogOff)),
	)
	srv := httptest.NewServer(newServeMux(engine, t.TempDir()))
	defer srv.Close()

	l := letter.Letter{
		Subject:      "안부",
		ReceiverName: "지민",
		Content:      "/{name}님, /{Device} /{ScreenW} /{DarkMode} /{Mob:모바일}",
	}
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/expand?"+l.Query().Encode()+"&sw=390&sh=844", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", iphoneUA)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", `"dark"`)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var body expandResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "지민님, Mobile 390 Dark 모바일", body.Expanded)
	assert.Equal(t, l.Subject, body.Letter.Subject)
}

func TestExpandHandlerRequiresLetter(t *testing.T) {
	engine := macro.NewWithConfig(nil, macro.WithLookups(nil, nil))
	srv := httptest.NewServer(newServeMux(engine, t.TempDir()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/expand?" + url.Values{"theme": {"rose"}}.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "mailmacro version "+version+"\n", out.String())
}
