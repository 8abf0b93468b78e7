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

// MaxPort is the largest valid port number.
const MaxPort = 65535

// portTable maps a lowercase scheme to its registered default port.
// Tables are built once and never mutated afterwards, so they can be
// shared by every URL parsed with the same Parser.
type portTable map[string]uint16

// defaultPorts holds the well-known ports of the schemes this package knows.
var defaultPorts = portTable{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
	"ftp":   21,
}

// lookup returns the default port for scheme and whether it is known.
func (t portTable) lookup(scheme string) (uint16, bool) {
	port, ok := t[scheme]
	return port, ok
}

// with returns a copy of the table extended with extra. Entries in extra
// replace existing ones.
func (t portTable) with(extra map[string]uint16) portTable {
	if len(extra) == 0 {
		return t
	}
	merged := make(portTable, len(t)+len(extra))
	for scheme, port := range t {
		merged[scheme] = port
	}
	for scheme, port := range extra {
		merged[scheme] = port
	}
	return merged
}

// DefaultPort returns the registered default port for scheme, which must be
// lowercase, and whether the scheme is known.
func DefaultPort(scheme string) (uint16, bool) {
	return defaultPorts.lookup(scheme)
}
