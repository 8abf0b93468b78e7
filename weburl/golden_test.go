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

package weburl_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/seedlib/weburl"
)

type goldenExpectation struct {
	Scheme   string `json:"scheme"`
	Host     string `json:"host"`
	Port     uint16 `json:"port"`
	Path     string `json:"path"`
	Query    string `json:"query"`
	Fragment string `json:"fragment"`
	String   string `json:"string"`
	Secure   bool   `json:"secure"`
}

type goldenCase struct {
	URL      string             `json:"url"`
	Expected *goldenExpectation `json:"expected"`
	Invalid  string             `json:"invalid"`
}

func loadGolden(t *testing.T) []goldenCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "url_golden.json"))
	require.NoError(t, err)

	var cases []goldenCase
	require.NoError(t, json.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

// TestGolden checks parse results and serializations against the golden corpus.
func TestGolden(t *testing.T) {
	for _, tc := range loadGolden(t) {
		t.Run(tc.URL, func(t *testing.T) {
			u, err := weburl.Parse(tc.URL)
			result := weburl.Validate(tc.URL)

			if tc.Invalid != "" {
				require.Error(t, err)
				assert.Nil(t, u)
				assert.False(t, result.Valid)
				assert.Equal(t, tc.Invalid, result.Reason)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, tc.Expected, "golden entry needs either expected or invalid")
			assert.True(t, result.Valid)
			assert.Empty(t, result.Reason)

			want := tc.Expected
			assert.Equal(t, want.Scheme, u.Scheme())
			assert.Equal(t, want.Host, u.Host())
			assert.Equal(t, want.Port, u.Port())
			assert.Equal(t, want.Path, u.Path())
			assert.Equal(t, want.Query, u.Query())
			assert.Equal(t, want.Fragment, u.Fragment())
			assert.Equal(t, want.String, u.String())
			assert.Equal(t, want.Secure, u.IsSecure())

			reparsed, err := weburl.Parse(u.String())
			require.NoError(t, err)
			assert.Equal(t, u.String(), reparsed.String())
		})
	}
}
