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

	"golang.org/x/text/unicode/bidi"
)

// bidiDirection classifies a single rune as right-to-left, left-to-right or neutral.
func bidiDirection(r rune) (rtl, ltr bool) {
	prop, _ := bidi.LookupRune(r)
	switch prop.Class() {
	case bidi.R, bidi.AL:
		return true, false
	case bidi.L:
		return false, true
	default:
		return false, false
	}
}

// validateBidiLabel applies the RFC 3987, Section 4.2 rules to one host
// label: it must not mix left-to-right and right-to-left characters, and a
// right-to-left label must start and end with right-to-left characters.
func validateBidiLabel(label string) bool {
	if label == "" {
		return true
	}

	runes := []rune(label)
	var hasLTR, hasRTL bool
	for _, r := range runes {
		rtl, ltr := bidiDirection(r)
		hasRTL = hasRTL || rtl
		hasLTR = hasLTR || ltr
	}

	if !hasRTL {
		return true
	}
	if hasLTR {
		return false
	}
	firstRTL, _ := bidiDirection(runes[0])
	lastRTL, _ := bidiDirection(runes[len(runes)-1])
	return firstRTL && lastRTL
}

// validateBidiHost checks every dot-separated label of a registered name.
func validateBidiHost(host string) error {
	for _, label := range strings.Split(host, ".") {
		if !validateBidiLabel(label) {
			return &kindError{
				kind:    ErrInvalidHost,
				message: "Invalid host label",
				details: label + " in host '" + host + "'",
			}
		}
	}
	return nil
}
