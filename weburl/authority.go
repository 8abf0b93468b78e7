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
	"net"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// ipvFutureParts is the number of parts expected in an IPvFuture literal
	// (e.g., "v1.abc"), separated by a dot.
	ipvFutureParts = 2
	// maxPortDigits is the longest port string the authority grammar accepts.
	maxPortDigits = 5
)

// authority is the decomposed form of the text found after "//".
// The userinfo part is checked against the grammar and then dropped.
type authority struct {
	host    string
	port    uint16
	hasPort bool
}

// parseAuthority splits an authority into host and port following the
// grammar [user[:pass]@](host | "[" literal "]")[":" port] and validates
// both parts.
func parseAuthority(raw string) (authority, error) {
	hostport := raw
	if at := strings.IndexByte(raw, '@'); at != -1 {
		// The user part runs to the first ':', the password to the '@'.
		// Neither can contain '@', which IndexByte already guarantees.
		hostport = raw[at+1:]
	}

	host, portText, hasPort, err := splitHostPort(hostport)
	if err != nil {
		return authority{}, err
	}
	if err := validateHost(host); err != nil {
		return authority{}, err
	}

	a := authority{host: host, hasPort: hasPort}
	if hasPort {
		if a.port, err = parsePort(portText); err != nil {
			return authority{}, err
		}
	}
	return a, nil
}

// splitHostPort separates the host from an optional ":port" suffix.
func splitHostPort(hostport string) (string, string, bool, error) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end == -1 {
			return "", "", false, &kindError{
				kind: ErrInvalidAuthority, message: "Invalid authority component: unterminated IP literal", details: hostport,
			}
		}
		if end == 1 {
			return "", "", false, &kindError{kind: ErrInvalidAuthority, message: "Invalid authority component: empty IP literal"}
		}
		host, rest := hostport[:end+1], hostport[end+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if rest[0] != ':' || rest == ":" {
			return "", "", false, &kindError{kind: ErrInvalidAuthority, details: hostport}
		}
		return host, rest[1:], true, nil
	}

	host, port, hasPort := strings.Cut(hostport, ":")
	if host == "" {
		return "", "", false, &kindError{kind: ErrInvalidAuthority, details: hostport}
	}
	if hasPort && port == "" {
		return "", "", false, &kindError{kind: ErrInvalidAuthority, details: hostport}
	}
	return host, port, hasPort, nil
}

// parsePort converts a decimal port string into a port number.
func parsePort(port string) (uint16, error) {
	for _, r := range port {
		if !isASCIIDigit(r) {
			return 0, &kindError{kind: ErrInvalidPort, char: r}
		}
	}
	if len(port) > maxPortDigits {
		return 0, &kindError{kind: ErrPortOutOfRange, details: port}
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return 0, &kindError{kind: ErrInvalidPort, details: port}
	}
	if n > MaxPort {
		return 0, &kindError{kind: ErrPortOutOfRange, details: port}
	}
	return uint16(n), nil
}

// validateHost checks the host for structural validity: the IP literal
// format for bracketed hosts, the allowed character set and bidi rules for
// registered names.
func validateHost(host string) error {
	if strings.HasPrefix(host, "[") {
		return validateIPLiteral(host)
	}

	for i := 0; i < len(host); {
		r, size := utf8.DecodeRuneInString(host[i:])
		if r == '%' {
			if i+2 >= len(host) || !isASCIIHexDigit(rune(host[i+1])) || !isASCIIHexDigit(rune(host[i+2])) {
				return &kindError{kind: ErrInvalidHost, message: "Invalid percent encoding in host", details: host}
			}
			i += 3
			continue
		}
		if r == utf8.RuneError && size == 1 {
			return &kindError{kind: ErrInvalidHost, message: "Invalid UTF-8 in host", details: host}
		}
		if !isIUnreservedOrSubDelims(r) {
			return &kindError{kind: ErrInvalidHost, message: "Invalid character in host", char: r}
		}
		i += size
	}
	return validateBidiHost(host)
}

// validateIPLiteral checks that a bracketed host holds a valid IPv6 or
// IPvFuture address.
func validateIPLiteral(host string) error {
	literal := host[1 : len(host)-1]
	if strings.HasPrefix(literal, "v") || strings.HasPrefix(literal, "V") {
		return validateIPVFuture(literal)
	}
	if !strings.Contains(literal, ":") || net.ParseIP(literal) == nil {
		return &kindError{kind: ErrInvalidHost, message: "Invalid host IP", details: host}
	}
	return nil
}

// validateIPVFuture validates an IPvFuture literal (e.g., "v1.something").
func validateIPVFuture(ip string) error {
	parts := strings.SplitN(ip[1:], ".", ipvFutureParts)
	if len(parts) != ipvFutureParts {
		return &kindError{kind: ErrInvalidHost, message: "Invalid IPvFuture format: no dot separator", details: ip}
	}
	version, address := parts[0], parts[1]
	if version == "" {
		return &kindError{kind: ErrInvalidHost, message: "Invalid IPvFuture: missing version", details: ip}
	}
	for _, r := range version {
		if !isASCIIHexDigit(r) {
			return &kindError{kind: ErrInvalidHost, message: "Invalid IPvFuture version char", char: r}
		}
	}
	if address == "" {
		return &kindError{kind: ErrInvalidHost, message: "Invalid IPvFuture: empty address part", details: ip}
	}
	for _, r := range address {
		if !isUnreservedOrSubDelims(r) && r != ':' {
			return &kindError{kind: ErrInvalidHost, message: "Invalid IPvFuture address char", char: r}
		}
	}
	return nil
}
