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

// Package weburl parses, validates and normalizes URLs of the form
// scheme://[userinfo@]host[:port]/path?query#fragment.
//
// The package offers one main type, URL, created by Parse. A URL exposes
// its components through read-only accessors, allows its scheme and port to
// be changed through validating setters, and serializes back to a canonical
// string with String, which omits the port when it is the scheme's default.
//
// Key features include:
//   - A permissive generic-syntax grammar matcher (RFC 3986, Appendix B),
//     followed by strict validation of the authority: IPv6 and IPvFuture
//     literals, registered-name characters and bidi rules for host labels.
//   - Default port inference for http, https, ws, wss and ftp, extensible
//     with WithDefaultPort.
//   - Lazily decoded, memoized query parameters (QueryParams).
//   - Syntax-based normalization (Normalize) and IDNA host conversion (ASCIIHost).
//   - Resolution of relative references against a base URL (Resolve) and
//     its inverse (Relativize).
//   - Support for JSON marshalling and unmarshalling.
//
// No network access of any kind is performed.
package weburl

import (
	"encoding/json"
	"strconv"
	"strings"
)

// URL is a parsed, validated URL. The zero value is not a valid URL; use
// Parse or a Parser to create one.
//
// A URL is not safe for concurrent use: QueryParams fills a cache on first call.
type URL struct {
	scheme   string
	host     string
	port     uint16
	path     string
	query    string
	fragment string

	// ports is the read-only default port table of the Parser that created
	// the URL.
	ports portTable

	params       map[string]string
	paramsParsed bool
}

// ValidationResult is the outcome of Validate. Reason is empty exactly when
// Valid is true.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Parse parses s into a URL using the default Parser. On failure it returns
// a nil URL and a *ParseError.
func Parse(s string) (*URL, error) {
	return defaultParser.Parse(s)
}

// ParseNormalized is like Parse but first converts s to Unicode
// Normalization Form C.
func ParseNormalized(s string) (*URL, error) {
	return normalizedParser.Parse(s)
}

// MustParse is like Parse but panics if s cannot be parsed. It simplifies
// the initialization of global variables holding URLs.
func MustParse(s string) *URL {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Validate reports whether s is a valid URL and, if not, why.
func Validate(s string) ValidationResult {
	return defaultParser.Validate(s)
}

// Scheme returns the lowercase scheme (e.g., "https").
func (u *URL) Scheme() string { return u.scheme }

// Host returns the host as written in the input, including the brackets of
// an IP literal.
func (u *URL) Host() string { return u.host }

// Port returns the explicit port, the scheme's default port when none was
// given, or 0 when neither is known.
func (u *URL) Port() uint16 { return u.port }

// Path returns the path. It is never empty; a missing path is "/".
func (u *URL) Path() string { return u.path }

// Query returns the raw, still percent-encoded query without the leading "?".
func (u *URL) Query() string { return u.query }

// Fragment returns the raw fragment without the leading "#".
func (u *URL) Fragment() string { return u.fragment }

// SetScheme replaces the scheme. The new scheme is lowercased; it must be
// non-empty, start with an ASCII letter and contain none of ":/?#".
// On error the URL is unchanged. The port is not re-derived.
func (u *URL) SetScheme(scheme string) error {
	scheme = strings.ToLower(scheme)
	if err := checkScheme(scheme); err != nil {
		return newValidationError(err)
	}
	u.scheme = scheme
	return nil
}

// SetPort replaces the port. Valid ports are 1 through 65535; on error the
// URL is unchanged.
func (u *URL) SetPort(port int) error {
	if err := checkPort(port); err != nil {
		return newValidationError(err)
	}
	u.port = uint16(port)
	return nil
}

// IsSecure reports whether the scheme is https or wss.
func (u *URL) IsSecure() bool {
	return u.scheme == "https" || u.scheme == "wss"
}

// String returns the canonical serialization of the URL. The port is
// omitted when it is 0 or the default port of the scheme; userinfo is never
// written. Components are written as stored, without re-encoding.
func (u *URL) String() string {
	var b strings.Builder
	b.Grow(len(u.scheme) + len(u.host) + len(u.path) + len(u.query) + len(u.fragment) + len("://:65535?#"))

	b.WriteString(u.scheme)
	b.WriteString("://")
	b.WriteString(u.authority())
	b.WriteString(u.path)

	if u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}

	return b.String()
}

// authority returns host[:port] with the same port elision as String.
func (u *URL) authority() string {
	if u.port == 0 {
		return u.host
	}
	if def, ok := u.ports.lookup(u.scheme); ok && def == u.port {
		return u.host
	}
	return u.host + ":" + strconv.Itoa(int(u.port))
}

// Clone returns a copy of the URL. The copy starts with an empty query
// parameter cache.
func (u *URL) Clone() *URL {
	return &URL{
		scheme:   u.scheme,
		host:     u.host,
		port:     u.port,
		path:     u.path,
		query:    u.query,
		fragment: u.fragment,
		ports:    u.ports,
	}
}

// MarshalJSON implements the json.Marshaler interface, encoding the URL as
// its canonical string.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface. It decodes a JSON
// string and parses it with the default Parser.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}
