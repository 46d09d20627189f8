// Package catalog loads catalog snapshots (courses, enrolled courses, cart
// and tasks) from JSON or YAML files, optionally brotli-compressed.
package catalog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/andybalholm/brotli"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions the loader cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatAuto sniffs the first non-space byte: '{' means JSON.
	FormatAuto Format = "auto"
)

// Source supplies a catalog view for one request.
type Source interface {
	Name() string
	Load(ctx context.Context) (domain.CatalogView, error)
}

// FileSource reads a snapshot from disk on every Load, so edits to the file
// are picked up without a restart. Path "-" reads stdin.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(ctx context.Context) (domain.CatalogView, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogView{}, err
	}
	return LoadFile(s.Path)
}

// StaticSource returns a fixed view.
type StaticSource struct {
	View domain.CatalogView
}

func (StaticSource) Name() string { return "static" }

func (s StaticSource) Load(context.Context) (domain.CatalogView, error) {
	return s.View, nil
}

// LoadFile decodes a snapshot file. The format comes from the extension:
// .json, .yaml or .yml, each optionally followed by .br for brotli.
func LoadFile(path string) (domain.CatalogView, error) {
	if path == "-" {
		return Decode(os.Stdin, FormatAuto)
	}

	format, compressed, err := FormatFor(path)
	if err != nil {
		return domain.CatalogView{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.CatalogView{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		r = brotli.NewReader(f)
	}
	view, err := Decode(r, format)
	if err != nil {
		return domain.CatalogView{}, fmt.Errorf("catalog %s: %w", filepath.Base(path), err)
	}
	return view, nil
}

// FormatFor maps a file name to its format and compression.
func FormatFor(path string) (Format, bool, error) {
	name := strings.ToLower(path)
	compressed := strings.HasSuffix(name, ".br")
	name = strings.TrimSuffix(name, ".br")

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// yamlView mirrors domain.CatalogView with tasks left as generic values so
// they can be re-encoded as JSON.
type yamlView struct {
	Courses  []domain.Course `yaml:"courses"`
	Enrolled []domain.Course `yaml:"user_course"`
	Cart     []domain.Course `yaml:"cart_products"`
	Tasks    []any           `yaml:"tasks"`
}

// Decode reads a catalog view in the given format.
func Decode(r io.Reader, format Format) (domain.CatalogView, error) {
	br := bufio.NewReader(r)
	if format == FormatAuto {
		format = sniff(br)
	}

	switch format {
	case FormatJSON:
		var view domain.CatalogView
		if err := json.NewDecoder(br).Decode(&view); err != nil {
			return domain.CatalogView{}, fmt.Errorf("decoding json: %w", err)
		}
		return view, nil

	case FormatYAML:
		var raw yamlView
		if err := yaml.NewDecoder(br).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return domain.CatalogView{}, fmt.Errorf("decoding yaml: %w", err)
		}
		view := domain.CatalogView{
			Courses:  raw.Courses,
			Enrolled: raw.Enrolled,
			Cart:     raw.Cart,
		}
		for i, task := range raw.Tasks {
			b, err := json.Marshal(task)
			if err != nil {
				return domain.CatalogView{}, fmt.Errorf("task %d: %w", i, err)
			}
			view.Tasks = append(view.Tasks, b)
		}
		return view, nil

	default:
		return domain.CatalogView{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func sniff(br *bufio.Reader) Format {
	for n := 1; ; n++ {
		peek, err := br.Peek(n)
		if len(peek) < n {
			return FormatYAML
		}
		b := peek[n-1]
		if bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			if err != nil {
				return FormatYAML
			}
			continue
		}
		if b == '{' {
			return FormatJSON
		}
		return FormatYAML
	}
}
