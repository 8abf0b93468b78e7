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

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// Parser turns strings into URLs. A Parser is immutable once built and is
// safe for concurrent use.
type Parser struct {
	ports     portTable
	logger    zerolog.Logger
	normalize bool
}

// Option configures a Parser.
type Option func(*parserConfig)

type parserConfig struct {
	logger    zerolog.Logger
	ports     map[string]uint16
	normalize bool
}

// WithLogger makes the Parser report every accepted and rejected input at
// debug level. Parsers log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *parserConfig) { c.logger = logger }
}

// WithDefaultPort registers the default port of a scheme, in addition to
// (or replacing) the built-in http, https, ws, wss and ftp entries.
func WithDefaultPort(scheme string, port uint16) Option {
	return func(c *parserConfig) {
		if c.ports == nil {
			c.ports = make(map[string]uint16)
		}
		c.ports[strings.ToLower(scheme)] = port
	}
}

// WithUnicodeNormalization makes the Parser convert its input to Unicode
// Normalization Form C before parsing, so canonically equivalent inputs
// produce identical URLs.
func WithUnicodeNormalization() Option {
	return func(c *parserConfig) { c.normalize = true }
}

// NewParser creates a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	cfg := parserConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{
		ports:     defaultPorts.with(cfg.ports),
		logger:    cfg.logger,
		normalize: cfg.normalize,
	}
}

var (
	defaultParser    = NewParser()
	normalizedParser = NewParser(WithUnicodeNormalization())
)

// Parse parses s into a URL. On failure it returns a nil URL and a
// *ParseError describing the first problem found.
func (p *Parser) Parse(s string) (*URL, error) {
	if p.normalize {
		s = norm.NFC.String(s)
	}

	u, err := p.parse(s)
	if err != nil {
		perr := newParseError(err)
		p.logger.Debug().Str("input", s).Str("reason", perr.Message).Msg("rejected URL")
		return nil, perr
	}

	p.logger.Debug().Str("input", s).Stringer("url", u).Msg("parsed URL")
	return u, nil
}

// Validate reports whether s parses as a URL, and why not when it does not.
func (p *Parser) Validate(s string) ValidationResult {
	_, err := p.Parse(s)
	if err == nil {
		return ValidationResult{Valid: true}
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return ValidationResult{Reason: perr.Message}
	}
	return ValidationResult{Reason: err.Error()}
}

// parse runs the grammar matcher and the parse-time validation rules.
func (p *Parser) parse(s string) (*URL, error) {
	c, err := splitComponents(s)
	if err != nil {
		return nil, err
	}

	u := &URL{
		scheme:   strings.ToLower(c.scheme),
		path:     c.path,
		query:    c.query,
		fragment: c.fragment,
		ports:    p.ports,
	}

	if c.authority != "" {
		a, err := parseAuthority(c.authority)
		if err != nil {
			return nil, err
		}
		u.host = a.host
		if a.hasPort {
			u.port = a.port
		} else if port, ok := p.ports.lookup(u.scheme); ok {
			u.port = port
		}
	}

	if u.host == "" {
		return nil, &kindError{kind: ErrMissingHost}
	}
	if u.scheme == "" {
		return nil, &kindError{kind: ErrNoScheme}
	}
	if err := checkScheme(u.scheme); err != nil {
		return nil, err
	}
	if u.path == "" {
		u.path = "/"
	}
	return u, nil
}

// components holds the raw pieces found by splitComponents. Absent
// components are empty strings.
type components struct {
	scheme    string
	authority string
	path      string
	query     string
	fragment  string
}

// splitComponents applies the generic URI grammar
//
//	[scheme ":"] ["//" authority] path ["?" query] ["#" fragment]
//
// where the scheme is any non-empty run free of ":/?#", the authority a run
// free of "/?#", the path a run free of "?#" and the query a run free of "#".
func splitComponents(s string) (components, error) {
	var c components
	input := newParserInput(s)

	if input.startsWith(":") {
		return c, &kindError{kind: ErrNoScheme}
	}

	if scheme := input.takeUntil(":/?#"); scheme != "" && input.startsWith(":") {
		c.scheme = scheme
		input.skip(1)
	} else {
		input.seek(0)
	}

	if input.startsWith("//") {
		input.skip(2)
		c.authority = input.takeUntil("/?#")
	}

	c.path = input.takeUntil("?#")

	if input.startsWith("?") {
		input.skip(1)
		c.query = input.takeUntil("#")
	}

	if input.startsWith("#") {
		input.skip(1)
		c.fragment = input.rest()
		if strings.IndexFunc(c.fragment, isLineTerminator) != -1 {
			return components{}, &kindError{kind: ErrInvalidFormat}
		}
	}

	return c, nil
}
