/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	out    string
	errOut string
	err    error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return runResult{out: out.String(), errOut: errOut.String(), err: err}
}

func TestParseCommand_Text(t *testing.T) {
	res := run(t, "", "parse", "https://Example.com/search?q=go#top")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "url:      https://Example.com/search?q=go#top\n")
	assert.Contains(t, res.out, "scheme:   https\n")
	assert.Contains(t, res.out, "host:     Example.com\n")
	assert.Contains(t, res.out, "port:     443\n")
	assert.Contains(t, res.out, "path:     /search\n")
	assert.Contains(t, res.out, "query:    q=go\n")
	assert.Contains(t, res.out, "fragment: top\n")
	assert.Contains(t, res.out, "secure:   true\n")
}

func TestParseCommand_JSON(t *testing.T) {
	res := run(t, "", "parse", "--output", "json", "http://example.com:8080/a?x=1&y=two+words", "ftp://files.example.com")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 2)

	var first parsedURL
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, parsedURL{
		URL:    "http://example.com:8080/a?x=1&y=two+words",
		Scheme: "http",
		Host:   "example.com",
		Port:   8080,
		Path:   "/a",
		Query:  "x=1&y=two+words",
		Params: map[string]string{"x": "1", "y": "two words"},
	}, first)

	var second parsedURL
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ftp://files.example.com/", second.URL)
	assert.Equal(t, uint16(21), second.Port)
	assert.Nil(t, second.Params)
}

func TestParseCommand_Invalid(t *testing.T) {
	res := run(t, "", "parse", "http://", "http://example.com")
	require.ErrorIs(t, res.err, ErrInvalidInput)
	assert.Contains(t, res.out, "host:     example.com\n")
	assert.Contains(t, res.errOut, "cannot parse URL")
	assert.Contains(t, res.errOut, "Missing host")
}

func TestParseCommand_Stdin(t *testing.T) {
	res := run(t, "http://a.example\n\n  https://b.example  \n", "parse", "-o", "json")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"host":"a.example"`)
	assert.Contains(t, lines[1], `"host":"b.example"`)
}

func TestValidateCommand(t *testing.T) {
	res := run(t, "", "validate", "http://example.com", "http://[invalid]", "://example.com")
	require.ErrorIs(t, res.err, ErrInvalidInput)

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "http://example.com: valid", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "http://[invalid]: invalid: Invalid host"), lines[1])
	assert.Equal(t, "://example.com: invalid: No scheme found", lines[2])
}

func TestValidateCommand_AllValid(t *testing.T) {
	res := run(t, "", "check", "-o", "json", "wss://example.com/socket")
	require.NoError(t, res.err)

	var v validation
	require.NoError(t, json.Unmarshal([]byte(res.out), &v))
	assert.Equal(t, validation{URL: "wss://example.com/socket", Valid: true}, v)
}

func TestQueryCommand(t *testing.T) {
	res := run(t, "", "query", "https://example.com/?b=2&a=hello+world&c=%26")
	require.NoError(t, res.err)
	assert.Equal(t, "a=hello world\nb=2\nc=&\n", res.out)
}

func TestQueryCommand_SelectedKeys(t *testing.T) {
	res := run(t, "", "query", "-o", "json", "https://example.com/?b=2&a=1", "a")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"a":"1"}`, res.out)

	res = run(t, "", "query", "https://example.com/?b=2", "missing")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `query parameter "missing" not found`)
}

func TestQueryCommand_Errors(t *testing.T) {
	res := run(t, "", "query")
	require.Error(t, res.err)

	res = run(t, "", "query", "not a url")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "Missing host")
}

func TestNormalizeCommand(t *testing.T) {
	res := run(t, "", "normalize", "HTTP://Example.COM/a/./b/../c/%7Euser", "https://example.com:443/x")
	require.NoError(t, res.err)
	assert.Equal(t, "http://example.com/a/c/~user\nhttps://example.com/x\n", res.out)
}

func TestNormalizeCommand_ASCII(t *testing.T) {
	res := run(t, "", "normalize", "--ascii", "-o", "json", "http://bücher.example/")
	require.NoError(t, res.err)

	var n normalized
	require.NoError(t, json.Unmarshal([]byte(res.out), &n))
	assert.Equal(t, "xn--bcher-kva.example", n.ASCIIHost)
	assert.Equal(t, "http://bücher.example/", n.Normalized)
}

func TestRootCommand_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seedurl.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"json\"\n\n[ports]\ngopher = 70\n"), 0o600))

	res := run(t, "", "parse", "--config", path, "gopher://example.com/")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `"port":70`)
	assert.Contains(t, res.out, `"url":"gopher://example.com/"`)

	res = run(t, "", "parse", "--config", path, "--output", "text", "gopher://example.com/")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "port:     70\n")
}

func TestRootCommand_BadFlags(t *testing.T) {
	res := run(t, "", "parse", "--output", "xml", "http://example.com")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `invalid output "xml"`)

	res = run(t, "", "parse", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "http://example.com")
	require.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestRootCommand_DebugLogging(t *testing.T) {
	res := run(t, "", "validate", "--log-level", "debug", "http://example.com")
	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, "configuration loaded")
	assert.Contains(t, res.errOut, "parsed URL")
}

func TestResolveCommand(t *testing.T) {
	res := run(t, "", "resolve", "https://example.com:8443/docs/guide/index.html", "../api", "/", "?page=2")
	require.NoError(t, res.err)
	assert.Equal(t, "https://example.com:8443/docs/api\nhttps://example.com:8443/\nhttps://example.com:8443/docs/guide/index.html?page=2\n", res.out)
}

func TestResolveCommand_Errors(t *testing.T) {
	res := run(t, "", "resolve", "-o", "json", "http://a/b", "g", "mailto:x")
	require.ErrorIs(t, res.err, ErrInvalidInput)
	assert.JSONEq(t, `{"reference":"g","url":"http://a/g"}`, res.out)
	assert.Contains(t, res.errOut, "cannot resolve reference")

	res = run(t, "", "resolve", "http://", "g")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cannot parse base")
}
