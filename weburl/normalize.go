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

package weburl

import (
	"strings"

	"golang.org/x/net/idna"
)

// Normalize applies syntax-based normalization according to RFC 3986,
// Section 6.2.2 and returns the result as a new URL:
//   - the host is lowercased and registered names are mapped to their
//     canonical Unicode form through IDNA;
//   - percent-encoded unreserved characters are decoded and the hex digits
//     of the remaining triplets are uppercased;
//   - "." and ".." path segments are removed.
//
// The scheme is already lowercase and the port is left untouched.
func (u *URL) Normalize() *URL {
	n := u.Clone()
	n.host = normalizeHost(normalizePercentEncoding(u.host))
	n.path = removeDotSegments(normalizePercentEncoding(u.path))
	n.query = normalizePercentEncoding(u.query)
	n.fragment = normalizePercentEncoding(u.fragment)
	return n
}

// ASCIIHost returns the host converted to its ASCII-compatible (Punycode)
// form, suitable for DNS. IP literals are returned unchanged.
func (u *URL) ASCIIHost() (string, error) {
	if strings.HasPrefix(u.host, "[") {
		return u.host, nil
	}
	ascii, err := idna.ToASCII(u.host)
	if err != nil {
		return "", newParseError(&kindError{
			kind:    ErrInvalidHost,
			message: "Invalid host for IDNA conversion",
			details: u.host,
		})
	}
	return ascii, nil
}

// normalizeHost applies case and IDNA normalization to a host.
func normalizeHost(host string) string {
	normalized := strings.ToLower(host)
	if strings.HasPrefix(normalized, "[") {
		return normalized
	}

	// Get the canonical Unicode form, which handles both direct Unicode and
	// Punycode input.
	if ascii, err := idna.ToASCII(normalized); err == nil {
		if unicodeHost, err := idna.ToUnicode(ascii); err == nil {
			normalized = unicodeHost
		}
	}

	// Nameprep (RFC 3491, Table B.2) maps 'ß' to "ss"; IDNA2008 as
	// implemented by x/net/idna does not.
	return strings.ReplaceAll(normalized, "ß", "ss")
}
