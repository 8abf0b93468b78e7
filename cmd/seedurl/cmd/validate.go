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

type validation struct {
	URL    string `json:"url"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [url...]",
		Aliases: []string{"check"},
		Short:   "Check URLs and report why invalid ones are rejected",
		Example: "seedurl validate http://example.com http://[invalid]",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(cmd, args)
			if err != nil {
				return err
			}
			return a.validate(inputs)
		},
	}
}

func (a *app) validate(inputs []string) error {
	failed := false
	for _, input := range inputs {
		result := a.parser.Validate(input)
		if !result.Valid {
			failed = true
		}

		if a.jsonOutput() {
			if err := a.writeJSON(validation{URL: input, Valid: result.Valid, Reason: result.Reason}); err != nil {
				return err
			}
			continue
		}

		if result.Valid {
			fmt.Fprintf(a.out, "%s: valid\n", input)
		} else {
			fmt.Fprintf(a.out, "%s: invalid: %s\n", input, result.Reason)
		}
	}

	if failed {
		return ErrInvalidInput
	}
	return nil
}
