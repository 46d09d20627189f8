package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSnapshot = `{
  "courses": [
    {"title": "Docker Fundamentals", "category": "DevOps", "rating": 4.4, "price": 30, "lessons_count": 18},
    {"title": "Kubernetes Mastery", "category": "DevOps"}
  ],
  "user_course": [{"title": "Python Basics"}],
  "cart_products": [],
  "tasks": [{"id": 1, "name": "Quiz"}]
}`

const yamlSnapshot = `courses:
  - title: Docker Fundamentals
    category: DevOps
    rating: 4.4
    price: 30
    lessons_count: 18
  - title: Kubernetes Mastery
    category: DevOps
user_course:
  - title: Python Basics
tasks:
  - id: 1
    name: Quiz
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func brotliBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoadFile_Formats(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"json", "catalog.json", []byte(jsonSnapshot)},
		{"yaml", "catalog.yaml", []byte(yamlSnapshot)},
		{"yml", "catalog.YML", []byte(yamlSnapshot)},
		{"brotli json", "catalog.json.br", brotliBytes(t, jsonSnapshot)},
		{"brotli yaml", "catalog.yaml.br", brotliBytes(t, yamlSnapshot)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := LoadFile(writeFile(t, tt.file, tt.data))
			require.NoError(t, err)

			require.Len(t, view.Courses, 2)
			c := view.Courses[0]
			assert.Equal(t, "Docker Fundamentals", c.Title)
			assert.Equal(t, "DevOps", c.Category)
			require.NotNil(t, c.Rating)
			assert.InDelta(t, 4.4, *c.Rating, 1e-9)
			require.NotNil(t, c.LessonsCount)
			assert.Equal(t, 18, *c.LessonsCount)
			assert.Nil(t, view.Courses[1].Rating)

			require.Len(t, view.Enrolled, 1)
			assert.Empty(t, view.Cart)
			require.Len(t, view.Tasks, 1)
			assert.JSONEq(t, `{"id":1,"name":"Quiz"}`, string(view.Tasks[0]))
		})
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile(writeFile(t, "catalog.csv", []byte("title\nx")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	_, err := LoadFile(writeFile(t, "bad.json", []byte(`{"courses": [`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestDecode_AutoSniff(t *testing.T) {
	view, err := Decode(strings.NewReader("\n\n  "+jsonSnapshot), FormatAuto)
	require.NoError(t, err)
	assert.Len(t, view.Courses, 2)

	view, err = Decode(strings.NewReader(yamlSnapshot), FormatAuto)
	require.NoError(t, err)
	assert.Len(t, view.Courses, 2)
}

func TestDecode_EmptyYAML(t *testing.T) {
	view, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, view.Courses)
}

func TestFileSource_Load(t *testing.T) {
	path := writeFile(t, "catalog.json", []byte(jsonSnapshot))
	src := FileSource{Path: path}
	assert.Equal(t, "file:"+path, src.Name())

	view, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Courses, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
