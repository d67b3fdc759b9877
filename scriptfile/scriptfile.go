// Package scriptfile reads drawing scripts from YAML and TOML documents.
//
// A document names the surface size and lists opcodes in order. Each
// entry carries the opcode's script name, its numeric arguments and
// whichever of the named fields the opcode uses:
//
//	width: 120
//	height: 80
//	ops:
//	  - op: fill_color
//	    color: "#ff0000"
//	  - op: translate
//	    args: [10, 10]
//	  - op: draw_rect
//	    args: [40, 20]
//	    fill: true
//
// The same script in TOML:
//
//	width = 120
//	height = 80
//
//	[[ops]]
//	op = "fill_color"
//	color = "#ff0000"
//
//	[[ops]]
//	op = "translate"
//	args = [10, 10]
//
//	[[ops]]
//	op = "draw_rect"
//	args = [40, 20]
//	fill = true
package scriptfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggscript"
)

// Format is a document encoding.
type Format uint8

const (
	// FormatYAML is a YAML document.
	FormatYAML Format = iota
	// FormatTOML is a TOML document.
	FormatTOML
)

// String returns the string representation of a Format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned for a file extension that names no format.
var ErrUnknownFormat = errors.New("scriptfile: unknown format")

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Document is the decoded form of a script file.
type Document struct {
	Width  int     `yaml:"width" toml:"width"`
	Height int     `yaml:"height" toml:"height"`
	Ops    []Entry `yaml:"ops" toml:"ops"`
}

// Entry is one opcode in a document.
type Entry struct {
	Op      string      `yaml:"op" toml:"op"`
	Args    []float64   `yaml:"args,omitempty" toml:"args,omitempty"`
	ID      string      `yaml:"id,omitempty" toml:"id,omitempty"`
	Text    string      `yaml:"text,omitempty" toml:"text,omitempty"`
	Color   string      `yaml:"color,omitempty" toml:"color,omitempty"`
	Color2  string      `yaml:"color2,omitempty" toml:"color2,omitempty"`
	Mode    string      `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Fill    bool        `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke  bool        `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	Sprites [][]float64 `yaml:"sprites,omitempty" toml:"sprites,omitempty"`
}

// EntryError reports an entry that could not be turned into an opcode.
type EntryError struct {
	Index int
	Op    string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("scriptfile: ops[%d] (%s): %v", e.Index, e.Op, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Load reads the script file at path. The format follows the extension.
func Load(path string) (ggscript.Script, error) {
	f, err := FormatOf(path)
	if err != nil {
		return ggscript.Script{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ggscript.Script{}, fmt.Errorf("scriptfile: %w", err)
	}
	return Decode(bytes.NewReader(data), f)
}

// Decode reads a script document from r. Unknown fields are rejected.
func Decode(r io.Reader, f Format) (ggscript.Script, error) {
	var doc Document
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return ggscript.Script{}, fmt.Errorf("scriptfile: decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc); err != nil {
			return ggscript.Script{}, fmt.Errorf("scriptfile: decode toml: %w", err)
		}
	default:
		return ggscript.Script{}, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	return doc.Script()
}

// Script converts the document to a script.
func (d *Document) Script() (ggscript.Script, error) {
	if d.Width < 0 || d.Height < 0 {
		return ggscript.Script{}, fmt.Errorf("scriptfile: invalid size %dx%d", d.Width, d.Height)
	}
	s := ggscript.Script{
		Width:  d.Width,
		Height: d.Height,
		Ops:    make([]ggscript.Op, 0, len(d.Ops)),
	}
	for i, e := range d.Ops {
		op, err := e.Build()
		if err != nil {
			return ggscript.Script{}, &EntryError{Index: i, Op: e.Op, Err: err}
		}
		s.Ops = append(s.Ops, op)
	}
	return s, nil
}
