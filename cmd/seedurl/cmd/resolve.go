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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type resolved struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve base reference...",
		Short:   "Resolve relative references against a base URL",
		Example: "seedurl resolve https://example.com/docs/index.html ../img/logo.png",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.resolve(args[0], args[1:])
		},
	}
}

func (a *app) resolve(rawBase string, refs []string) error {
	base, err := a.parser.Parse(rawBase)
	if err != nil {
		return errors.Wrapf(err, "cannot parse base %q", rawBase)
	}

	failed := false
	for _, ref := range refs {
		target, err := base.Resolve(ref)
		if err != nil {
			failed = true
			a.logger.Error().Err(err).Str("base", rawBase).Str("reference", ref).Msg("cannot resolve reference")
			continue
		}

		if a.jsonOutput() {
			if err := a.writeJSON(resolved{Reference: ref, URL: target.String()}); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(a.out, target)
	}

	if failed {
		return ErrInvalidInput
	}
	return nil
}
