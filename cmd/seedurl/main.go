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

// Command seedurl parses, validates and normalizes URLs.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/jplu/seedlib/cmd/seedurl/cmd"
)

func main() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	root := cmd.NewRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		log.Error().Stack().Err(err).Msg("seedurl failed")
		os.Exit(1)
	}
}
