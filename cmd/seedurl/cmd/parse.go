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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jplu/seedlib/weburl"
)

type parsedURL struct {
	URL      string            `json:"url"`
	Scheme   string            `json:"scheme"`
	Host     string            `json:"host"`
	Port     uint16            `json:"port"`
	Path     string            `json:"path"`
	Query    string            `json:"query,omitempty"`
	Fragment string            `json:"fragment,omitempty"`
	Secure   bool              `json:"secure"`
	Params   map[string]string `json:"params,omitempty"`
}

func newParsedURL(u *weburl.URL) parsedURL {
	p := parsedURL{
		URL:      u.String(),
		Scheme:   u.Scheme(),
		Host:     u.Host(),
		Port:     u.Port(),
		Path:     u.Path(),
		Query:    u.Query(),
		Fragment: u.Fragment(),
		Secure:   u.IsSecure(),
	}
	if params := u.QueryParams(); len(params) > 0 {
		p.Params = params
	}
	return p
}

func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "parse [url...]",
		Short:   "Print the components of URLs",
		Example: "seedurl parse https://example.com:8443/search?q=go",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(cmd, args)
			if err != nil {
				return err
			}
			return a.parse(inputs)
		},
	}
}

func (a *app) parse(inputs []string) error {
	failed, printed := false, 0
	for _, input := range inputs {
		u, err := a.parser.Parse(input)
		if err != nil {
			failed = true
			a.logger.Error().Err(err).Str("input", input).Msg("cannot parse URL")
			continue
		}

		if a.jsonOutput() {
			if err := a.writeJSON(newParsedURL(u)); err != nil {
				return err
			}
			continue
		}

		if printed > 0 {
			fmt.Fprintln(a.out)
		}
		printed++
		tw := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
		fmt.Fprintf(tw, "url:\t%s\n", u)
		fmt.Fprintf(tw, "scheme:\t%s\n", u.Scheme())
		fmt.Fprintf(tw, "host:\t%s\n", u.Host())
		fmt.Fprintf(tw, "port:\t%d\n", u.Port())
		fmt.Fprintf(tw, "path:\t%s\n", u.Path())
		fmt.Fprintf(tw, "query:\t%s\n", u.Query())
		fmt.Fprintf(tw, "fragment:\t%s\n", u.Fragment())
		fmt.Fprintf(tw, "secure:\t%t\n", u.IsSecure())
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if failed {
		return ErrInvalidInput
	}
	return nil
}
