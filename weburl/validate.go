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
	"strconv"
	"strings"
)

// schemeDelimiters are the characters that end a scheme in the grammar; a
// scheme containing one of them would not survive a serialization round trip.
const schemeDelimiters = ":/?#"

// checkScheme validates a lowercase scheme for both parse time and SetScheme.
func checkScheme(scheme string) error {
	if scheme == "" {
		return &kindError{kind: ErrInvalidScheme}
	}
	if !isASCIILetter(rune(scheme[0])) {
		return &kindError{kind: ErrInvalidScheme, details: scheme}
	}
	if i := strings.IndexAny(scheme, schemeDelimiters); i != -1 {
		return &kindError{kind: ErrInvalidScheme, char: rune(scheme[i])}
	}
	return nil
}

// checkPort validates a port given to SetPort. Unlike parsing, where 0
// means "not specified", an explicitly set port must be a real one.
func checkPort(port int) error {
	if port == 0 {
		return &kindError{kind: ErrZeroPort}
	}
	if port < 0 || port > MaxPort {
		return &kindError{kind: ErrPortOutOfRange, details: strconv.Itoa(port)}
	}
	return nil
}
