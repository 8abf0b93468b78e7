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

// Package cmd implements the seedurl command line.
package cmd

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jplu/seedlib/config"
	"github.com/jplu/seedlib/logging"
	"github.com/jplu/seedlib/weburl"
)

// ErrInvalidInput is returned when at least one input failed to parse.
var ErrInvalidInput = errors.New("one or more inputs are invalid")

type globalFlags struct {
	configPath string
	logLevel   string
	output     string
}

// app carries the state shared by the subcommands once the configuration
// has been resolved.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	logger zerolog.Logger
	parser *weburl.Parser
}

// NewRootCommand builds the seedurl command tree writing results to out and
// logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	flags := &globalFlags{}
	a := &app{out: out, errOut: errOut, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "seedurl",
		Short:         "Parse, validate, normalize and resolve URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format (text|json)")

	root.AddCommand(
		newParseCommand(a),
		newValidateCommand(a),
		newQueryCommand(a),
		newNormalizeCommand(a),
		newResolveCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = strings.ToLower(flags.logLevel)
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = strings.ToLower(flags.output)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	logger, err := logging.New(a.errOut, cfg.Log.Level, cfg.Log.Format == config.LogJSON)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.parser = weburl.NewParser(append(cfg.ParserOptions(), weburl.WithLogger(logger))...)
	logger.Debug().Str("config", flags.configPath).Str("output", cfg.Output).Msg("configuration loaded")
	return nil
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output == config.OutputJSON
}

// inputs returns the command arguments, or the non-blank lines of stdin
// when there are none.
func (a *app) inputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading stdin")
	}
	return lines, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), "writing output")
}
