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

import "strings"

// isASCIILetter checks if a rune is an ASCII letter.
func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isASCIIDigit checks if a rune is an ASCII digit.
func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isASCIIHexDigit checks if a rune is an ASCII hexadecimal digit.
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// unhex returns the value of a hexadecimal digit. The caller must have
// checked it with isASCIIHexDigit.
func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// isLineTerminator reports the characters a fragment may not contain.
func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

// isForbiddenBidiFormatting checks for bidirectional formatting characters.
// RFC 3987, Section 4.1 forbids LRM (U+200E), RLM (U+200F) and LRE, RLE,
// PDF, LRO, RLO (U+202A to U+202E).
func isForbiddenBidiFormatting(c rune) bool {
	return (c >= '\u202A' && c <= '\u202E') || c == '\u200E' || c == '\u200F'
}

// isIUnreservedOrSubDelims checks if a character is in the iunreserved or
// sub-delims sets of RFC 3987, which lets internationalized host names through.
func isIUnreservedOrSubDelims(c rune) bool {
	if isForbiddenBidiFormatting(c) {
		return false
	}

	if isUnreservedOrSubDelims(c) {
		return true
	}

	switch {
	case c >= '\u00A0' && c <= '\uD7FF',
		c >= '\uF900' && c <= '\uFDCF',
		c >= '\uFDF0' && c <= '\uFFEF',
		c >= 0x10000 && c <= 0x1FFFD,
		c >= 0x20000 && c <= 0x2FFFD,
		c >= 0x30000 && c <= 0x3FFFD,
		c >= 0x40000 && c <= 0x4FFFD,
		c >= 0x50000 && c <= 0x5FFFD,
		c >= 0x60000 && c <= 0x6FFFD,
		c >= 0x70000 && c <= 0x7FFFD,
		c >= 0x80000 && c <= 0x8FFFD,
		c >= 0x90000 && c <= 0x9FFFD,
		c >= 0xA0000 && c <= 0xAFFFD,
		c >= 0xB0000 && c <= 0xBFFFD,
		c >= 0xC0000 && c <= 0xCFFFD,
		c >= 0xD0000 && c <= 0xDFFFD,
		c >= 0xE1000 && c <= 0xEFFFD:
		return true
	}
	return false
}

// isUnreservedOrSubDelims checks if a character is in the unreserved or
// sub-delims sets as defined by RFC 3986 (US-ASCII only).
func isUnreservedOrSubDelims(c rune) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || strings.ContainsRune("!$&'()*+,-.;=_~", c)
}

// isUnreserved checks if a character is in the unreserved set as defined by RFC 3986.
func isUnreserved(c rune) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}
