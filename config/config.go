package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v2"
)

var ErrUnsupportedFormat = errors.New("unsupported ruleset format")

// Piece is one piece declaration. Symbols holds the white and black symbol,
// in that order, under the key "id".
type Piece struct {
	Name       string   `yaml:"name" json:"name" hcl:"name,label"`
	Symbols    string   `yaml:"id" json:"id" hcl:"id"`
	Moves      []string `yaml:"moves" json:"moves" hcl:"moves,optional"`
	Promotable bool     `yaml:"promotable" json:"promotable" hcl:"promotable,optional"`
	PromotesTo string   `yaml:"promotes_to" json:"promotes_to" hcl:"promotes_to,optional"`
}

// Position is a named starting placement.
type Position struct {
	Name string `yaml:"name" json:"name" hcl:"name,label"`
	FEN  string `yaml:"fen" json:"fen" hcl:"fen"`
}

type Ruleset struct {
	Pieces    []Piece    `yaml:"pieces" json:"pieces" hcl:"piece,block"`
	Positions []Position `yaml:"positions" json:"positions" hcl:"position,block"`
}

func (r *Ruleset) merge(other *Ruleset) {
	r.Pieces = append(r.Pieces, other.Pieces...)
	r.Positions = append(r.Positions, other.Positions...)
}

type decodeFunc func(path string, data []byte, out *Ruleset) error

var decoders = map[string]decodeFunc{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": decodeJSON,
	".hcl":  decodeHCL,
}

func decodeYAML(_ string, data []byte, out *Ruleset) error {
	return yaml.Unmarshal(data, out)
}

func decodeJSON(_ string, data []byte, out *Ruleset) error {
	return json.Unmarshal(data, out)
}

func decodeHCL(path string, data []byte, out *Ruleset) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(file.Body, nil, out); diags.HasErrors() {
		return diags
	}
	return nil
}

// Supported reports whether path has an extension Load can read.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

/*
	Reads every path into one ruleset, in order. A directory is walked for
	supported files, which are read in lexical order; files inside a directory
	with other extensions are skipped, but a file named explicitly must be
	supported. A file reached twice is only read once.
*/
func Load(paths ...string) (*Ruleset, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	rs := &Ruleset{}
	for _, path := range files {
		next, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		rs.merge(next)
	}
	return rs, nil
}

func LoadFile(path string) (*Ruleset, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	rs := &Ruleset{}
	if err := decode(path, data, rs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rs, nil
}

func expand(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	files := []string{}
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		found := []string{}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && Supported(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}

		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return files, nil
}
