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

// QueryParams returns the query string decoded into key/value pairs. The
// map is computed on first use and cached on the URL; later calls return the
// same map, so callers must not modify it. When a key repeats, the last
// occurrence wins.
//
// The cache is filled lazily, which makes QueryParams unsafe to call
// concurrently on a shared URL.
func (u *URL) QueryParams() map[string]string {
	if !u.paramsParsed {
		u.params = parseQuery(u.query)
		u.paramsParsed = true
	}
	return u.params
}

// QueryParam returns the decoded value of the query parameter key and
// whether it is present.
func (u *URL) QueryParam(key string) (string, bool) {
	v, ok := u.QueryParams()[key]
	return v, ok
}

// parseQuery splits a raw query on '&' and decodes each pair. A pair
// without '=' is a key with an empty value; empty pairs are skipped.
func parseQuery(query string) map[string]string {
	params := make(map[string]string)
	if query == "" {
		return params
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		params[decodeComponent(key)] = decodeComponent(value)
	}
	return params
}
