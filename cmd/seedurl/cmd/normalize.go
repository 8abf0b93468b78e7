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

	"github.com/spf13/cobra"
)

type normalized struct {
	URL        string `json:"url"`
	Normalized string `json:"normalized"`
	ASCIIHost  string `json:"ascii_host,omitempty"`
}

func newNormalizeCommand(a *app) *cobra.Command {
	var ascii bool
	cmd := &cobra.Command{
		Use:     "normalize [url...]",
		Short:   "Print the normalized form of URLs",
		Example: "seedurl normalize HTTP://Example.COM/a/./b/../c",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(cmd, args)
			if err != nil {
				return err
			}
			return a.normalize(inputs, ascii)
		},
	}
	cmd.Flags().BoolVar(&ascii, "ascii", false, "also print the host in IDNA ASCII form")
	return cmd
}

func (a *app) normalize(inputs []string, ascii bool) error {
	failed := false
	for _, input := range inputs {
		u, err := a.parser.Parse(input)
		if err != nil {
			failed = true
			a.logger.Error().Err(err).Str("input", input).Msg("cannot parse URL")
			continue
		}

		result := normalized{URL: input, Normalized: u.Normalize().String()}
		if ascii {
			if result.ASCIIHost, err = u.ASCIIHost(); err != nil {
				failed = true
				a.logger.Error().Err(err).Str("input", input).Msg("cannot convert host")
				continue
			}
		}

		if a.jsonOutput() {
			if err := a.writeJSON(result); err != nil {
				return err
			}
			continue
		}

		if ascii {
			fmt.Fprintf(a.out, "%s %s\n", result.Normalized, result.ASCIIHost)
		} else {
			fmt.Fprintln(a.out, result.Normalized)
		}
	}

	if failed {
		return ErrInvalidInput
	}
	return nil
}
