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

package cmd

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newQueryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "query url [key...]",
		Short:   "Print the decoded query parameters of a URL",
		Example: "seedurl query 'https://example.com/?b=2&a=hello+world' a",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.query(args[0], args[1:])
		},
	}
}

func (a *app) query(input string, keys []string) error {
	u, err := a.parser.Parse(input)
	if err != nil {
		return errors.Wrapf(err, "cannot parse %q", input)
	}

	params := u.QueryParams()
	if len(keys) > 0 {
		selected := make(map[string]string, len(keys))
		for _, key := range keys {
			value, ok := u.QueryParam(key)
			if !ok {
				return errors.Errorf("query parameter %q not found", key)
			}
			selected[key] = value
		}
		params = selected
	}

	if a.jsonOutput() {
		return a.writeJSON(params)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.out, "%s=%s\n", name, params[name])
	}
	return nil
}
