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

// removeDotSegments implements the "Remove Dot Segments" algorithm from
// RFC 3986, Section 5.2.4 for the absolute paths a URL always has. A "."
// or ".." in last position leaves a trailing slash behind.
func removeDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	output := make([]string, 0, len(segments))
	for i, segment := range segments {
		last := i == len(segments)-1
		switch segment {
		case ".":
		case "..":
			if len(output) > 0 {
				output = output[:len(output)-1]
			}
		default:
			output = append(output, segment)
			continue
		}
		if last {
			output = append(output, "")
		}
	}

	return "/" + strings.Join(output, "/")
}
