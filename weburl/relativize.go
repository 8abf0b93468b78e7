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

// Relativize returns the shortest reference that resolves against u to
// target, so that u.Resolve(u.Relativize(target)) serializes like target
// whenever the path of target has no dot segments. A target with another
// scheme is returned whole; one with another authority as a network-path
// reference.
func (u *URL) Relativize(target *URL) string {
	if u.scheme != target.scheme {
		return target.String()
	}
	if u.host != target.host || u.port != target.port || strings.HasPrefix(target.path, "//") {
		return "//" + target.authority() + target.path + target.suffix(true)
	}

	if u.path == target.path {
		return u.relativizeSamePath(target)
	}
	return relativePath(u.path, target.path) + target.suffix(true)
}

// suffix returns the "?query" and "#fragment" parts of u that are present.
func (u *URL) suffix(withQuery bool) string {
	var b strings.Builder
	if withQuery && u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

func (u *URL) relativizeSamePath(target *URL) string {
	switch {
	case u.query == target.query:
		return target.suffix(false)
	case target.query != "":
		return target.suffix(true)
	}

	// The base query must be dropped, which only a non-empty path does.
	last := target.path[strings.LastIndexByte(target.path, '/')+1:]
	if last == "" {
		last = "."
	}
	return guardColon(last) + target.suffix(false)
}

// relativePath builds the relative path leading from the directory of
// basePath to targetPath. Both paths are absolute. The last segment of
// targetPath names a file and never takes part in the common prefix.
func relativePath(basePath, targetPath string) string {
	baseDir := basePath[:strings.LastIndexByte(basePath, '/')+1]

	var baseSegs []string
	if baseDir != "/" {
		baseSegs = strings.Split(baseDir[1:len(baseDir)-1], "/")
	}
	targetSegs := strings.Split(targetPath[1:], "/")

	common := 0
	for common < len(baseSegs) && common < len(targetSegs)-1 && baseSegs[common] == targetSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(baseSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))

	rel := b.String()
	switch {
	case rel == "":
		// The target is the base directory itself.
		return "."
	case strings.HasPrefix(rel, "/"):
		return "./" + rel
	}
	return guardColon(rel)
}

// guardColon prefixes rel with "./" when its first segment contains a colon
// and would otherwise be read as a scheme.
func guardColon(rel string) string {
	colon := strings.IndexByte(rel, ':')
	if colon < 0 {
		return rel
	}
	if slash := strings.IndexByte(rel, '/'); slash >= 0 && slash < colon {
		return rel
	}
	return "./" + rel
}
