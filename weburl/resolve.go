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

	"github.com/rs/zerolog"
)

// reference holds the components of a URI reference. The has* flags
// distinguish an empty component from an absent one.
type reference struct {
	scheme       string
	authority    string
	path         string
	query        string
	fragment     string
	hasAuthority bool
	hasQuery     bool
	hasFragment  bool
}

func (r *reference) String() string {
	var b strings.Builder
	b.WriteString(r.scheme)
	b.WriteString("://")
	b.WriteString(r.authority)
	b.WriteString(r.path)
	if r.hasQuery {
		b.WriteByte('?')
		b.WriteString(r.query)
	}
	if r.hasFragment {
		b.WriteByte('#')
		b.WriteString(r.fragment)
	}
	return b.String()
}

// isReferenceScheme checks s against the RFC 3986 scheme production
// ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isReferenceScheme(s string) bool {
	if s == "" || !isASCIILetter(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		r := rune(s[i])
		if !isASCIILetter(r) && !isASCIIDigit(r) && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// splitReference breaks a reference into its components. A leading
// "name:" is only taken as a scheme when name is a valid scheme.
func splitReference(ref string) reference {
	var r reference

	if i := strings.IndexByte(ref, '#'); i >= 0 {
		r.fragment, r.hasFragment = ref[i+1:], true
		ref = ref[:i]
	}
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		r.query, r.hasQuery = ref[i+1:], true
		ref = ref[:i]
	}
	if i := strings.IndexByte(ref, ':'); i >= 0 && isReferenceScheme(ref[:i]) {
		r.scheme = ref[:i]
		ref = ref[i+1:]
	}

	if rest, ok := strings.CutPrefix(ref, "//"); ok {
		r.hasAuthority = true
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			r.authority, r.path = rest[:i], rest[i:]
		} else {
			r.authority = rest
		}
	} else {
		r.path = ref
	}
	return r
}

// mergePaths appends a relative path to everything up to the last slash of
// the base path (RFC 3986, Section 5.2.3).
func mergePaths(base, rel string) string {
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		return base[:i+1] + rel
	}
	return "/" + rel
}

// Resolve resolves ref against u as described in RFC 3986, Section 5.2.2
// and returns the target URL, which is validated like any parsed URL and
// shares the default port table of u. The fragment of u is never inherited.
func (u *URL) Resolve(ref string) (*URL, error) {
	p := &Parser{ports: u.ports, logger: zerolog.Nop()}
	if p.ports == nil {
		p.ports = defaultPorts
	}

	r := splitReference(ref)
	t := reference{fragment: r.fragment, hasFragment: r.hasFragment}

	switch {
	case r.scheme != "":
		t.scheme = r.scheme
		t.authority = r.authority
		t.path = removeDotSegments(r.path)
		t.query, t.hasQuery = r.query, r.hasQuery
	case r.hasAuthority:
		t.scheme = u.scheme
		t.authority = r.authority
		t.path = removeDotSegments(r.path)
		t.query, t.hasQuery = r.query, r.hasQuery
	case r.path == "":
		t.scheme = u.scheme
		t.authority = u.authority()
		t.path = u.path
		if r.hasQuery {
			t.query, t.hasQuery = r.query, true
		} else {
			t.query, t.hasQuery = u.query, u.query != ""
		}
	default:
		t.scheme = u.scheme
		t.authority = u.authority()
		if strings.HasPrefix(r.path, "/") {
			t.path = removeDotSegments(r.path)
		} else {
			t.path = removeDotSegments(mergePaths(u.path, r.path))
		}
		t.query, t.hasQuery = r.query, r.hasQuery
	}

	if r.scheme != "" && !r.hasAuthority {
		// scheme:path has no host and is rejected like any host-less input.
		return nil, newParseError(&kindError{kind: ErrMissingHost})
	}

	target, err := p.parse(t.String())
	if err != nil {
		return nil, newParseError(err)
	}
	return target, nil
}
