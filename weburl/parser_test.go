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

//nolint:testpackage // White-box tests for the unexported grammar matcher.
package weburl

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitComponents(t *testing.T) {
	testCases := []struct {
		input string
		want  components
	}{
		{"", components{}},
		{"not a url", components{path: "not a url"}},
		{"http://example.com", components{scheme: "http", authority: "example.com"}},
		{"http:", components{scheme: "http"}},
		{"http:/a", components{scheme: "http", path: "/a"}},
		{"http:///a", components{scheme: "http", path: "/a"}},
		{"//host/p", components{authority: "host", path: "/p"}},
		{"a:b:c", components{scheme: "a", path: "b:c"}},
		{"a/b:c", components{path: "a/b:c"}},
		{"?q", components{query: "q"}},
		{"#f", components{fragment: "f"}},
		{"s://u@h:1/p/q?x=1&y#z#w", components{scheme: "s", authority: "u@h:1", path: "/p/q", query: "x=1&y", fragment: "z#w"}},
		{"s://h?a?b", components{scheme: "s", authority: "h", query: "a?b"}},
		{"s://h#a?b", components{scheme: "s", authority: "h", fragment: "a?b"}},
		{"не:путь", components{scheme: "не", path: "путь"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := splitComponents(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitComponents_Errors(t *testing.T) {
	testCases := map[string]error{
		":":              ErrNoScheme,
		"://example.com": ErrNoScheme,
		"s://h/#a\rb":    ErrInvalidFormat,
		"s://h/#a\u2028": ErrInvalidFormat,
		"s://h/#\u2029":  ErrInvalidFormat,
	}
	for input, want := range testCases {
		_, err := splitComponents(input)
		assert.ErrorIs(t, err, want, "%q", input)
	}
}

// TestSplitComponents_LineBreakOutsideFragment checks that only the fragment
// is sensitive to line terminators.
func TestSplitComponents_LineBreakOutsideFragment(t *testing.T) {
	c, err := splitComponents("s://h/a\nb?c\nd")
	require.NoError(t, err)
	assert.Equal(t, "/a\nb", c.path)
	assert.Equal(t, "c\nd", c.query)
}

func TestParser_WithDefaultPort(t *testing.T) {
	p := NewParser(WithDefaultPort("Gopher", 70), WithDefaultPort("http", 8080))

	u, err := p.Parse("gopher://example.com/1")
	require.NoError(t, err)
	assert.Equal(t, uint16(70), u.Port())
	assert.Equal(t, "gopher://example.com/1", u.String())

	u, err = p.Parse("http://example.com:80/")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:80/", u.String())

	// The package-level table is not affected.
	u = MustParse("gopher://example.com/1")
	assert.Equal(t, uint16(0), u.Port())
	port, ok := DefaultPort("http")
	assert.True(t, ok)
	assert.Equal(t, uint16(80), port)
}

func TestParser_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	p := NewParser(WithLogger(logger))

	_, err := p.Parse("https://example.com:443/x")
	require.NoError(t, err)
	_, err = p.Parse("http://")
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var accepted, rejected map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &accepted))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rejected))

	assert.Equal(t, "parsed URL", accepted["message"])
	assert.Equal(t, "https://example.com/x", accepted["url"])
	assert.Equal(t, "rejected URL", rejected["message"])
	assert.Equal(t, "Missing host", rejected["reason"])
	assert.Equal(t, "http://", rejected["input"])
}

func TestParser_NoLoggerByDefault(t *testing.T) {
	p := NewParser()
	assert.Equal(t, zerolog.Disabled, p.logger.GetLevel())
}

func TestParser_WithUnicodeNormalization(t *testing.T) {
	// "e" followed by a combining acute accent, which NFC composes into "é".
	decomposed := "http://example.com/caf" + "e\u0301"

	plain, err := Parse(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "/cafe\u0301", plain.Path())

	normalized, err := ParseNormalized(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "/caf\u00e9", normalized.Path())

	p := NewParser(WithUnicodeNormalization())
	u, err := p.Parse(decomposed)
	require.NoError(t, err)
	assert.Equal(t, normalized.String(), u.String())
}

func TestParser_Validate(t *testing.T) {
	p := NewParser(WithDefaultPort("gopher", 70))
	assert.Equal(t, ValidationResult{Valid: true}, p.Validate("gopher://example.com"))
	assert.Equal(t, ValidationResult{Reason: "Missing host"}, p.Validate("gopher:"))
}

// TestParser_Concurrent exercises a shared Parser from several goroutines.
func TestParser_Concurrent(t *testing.T) {
	p := NewParser(WithDefaultPort("gopher", 70))
	inputs := []string{"http://a.example/x", "gopher://b.example", "https://c.example:8443/", "bad"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, input := range inputs {
				_ = p.Validate(input)
				if u, err := p.Parse(input); err == nil {
					_ = u.String()
				}
			}
		}()
	}
	wg.Wait()
}
