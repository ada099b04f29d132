package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/gravitrone/novel-matrix/internal/matrix"
)

// Extension is the fixed export file extension.
const Extension = ".csv"

// DefaultSuffix is the token an export file name must carry before Extension.
const DefaultSuffix = "_relationships"

var (
	// ErrInvalidFileName rejects paths without the suffix/extension pair.
	ErrInvalidFileName = errors.New("invalid export file name")
	// ErrUnknownEncoding rejects text encodings x/text does not know.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)

// WriteError reports a failed export write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// --- Options ---

// Markers is the cell text for a true and a false cell.
type Markers struct {
	True  string
	False string
}

// Options controls the table layout and its serialization.
type Options struct {
	RowNumbers bool
	Markers    map[matrix.Category]Markers
	Delimiter  rune
	Encoding   string
	Suffix     string
}

// DefaultOptions returns the per-category letter markers, numbered rows,
// comma delimiter and UTF-8.
func DefaultOptions() Options {
	return Options{
		RowNumbers: true,
		Markers: map[matrix.Category]Markers{
			matrix.Arc:       {True: "A"},
			matrix.Character: {True: "C"},
			matrix.Location:  {True: "L"},
			matrix.Item:      {True: "I"},
		},
		Delimiter: ',',
		Encoding:  "utf-8",
		Suffix:    DefaultSuffix,
	}
}

// SharedMarkers sets one marker pair for every category.
func (o *Options) SharedMarkers(m Markers) {
	o.Markers = make(map[matrix.Category]Markers, len(matrix.Categories))
	for _, c := range matrix.Categories {
		o.Markers[c] = m
	}
}

func (o Options) marker(c matrix.Category, value bool) string {
	m := o.Markers[c]
	if value {
		return m.True
	}
	return m.False
}

// --- Formatting ---

// Format projects the grid into rows of cells: a header row with the column
// titles, then one row per scene with its markers in Arc, Character,
// Location, Item order.
func Format(g *matrix.Grid, opts Options) [][]string {
	labels := g.Labels()
	table := make([][]string, 0, len(labels.Rows)+1)

	header := []string{}
	if opts.RowNumbers {
		header = append(header, "")
	}
	header = append(header, "")
	for _, c := range matrix.Categories {
		for _, col := range labels.Columns(c) {
			header = append(header, col.Title)
		}
	}
	table = append(table, header)

	for i, row := range labels.Rows {
		line := make([]string, 0, len(header))
		if opts.RowNumbers {
			line = append(line, strconv.Itoa(i+1))
		}
		line = append(line, row.Title)
		for _, c := range matrix.Categories {
			for _, col := range labels.Columns(c) {
				line = append(line, opts.marker(c, g.Get(row.Key, c, col.Key)))
			}
		}
		table = append(table, line)
	}
	return table
}

// --- Writing ---

// ValidateFileName checks the suffix/extension contract, case-insensitively.
func ValidateFileName(path, suffix string) error {
	want := strings.ToLower(suffix + Extension)
	if !strings.HasSuffix(strings.ToLower(path), want) {
		return fmt.Errorf("%w: %q must end with %q", ErrInvalidFileName, filepath.Base(path), suffix+Extension)
	}
	return nil
}

// DefaultPath derives the export path next to a project file.
func DefaultPath(projectPath, suffix string) string {
	dir := filepath.Dir(projectPath)
	stem := filepath.Base(projectPath)
	for ext := filepath.Ext(stem); ext != ""; ext = filepath.Ext(stem) {
		stem = strings.TrimSuffix(stem, ext)
	}
	return filepath.Join(dir, stem+suffix+Extension)
}

// Encode serializes the table with the configured delimiter and encoding.
func Encode(table [][]string, opts Options) ([]byte, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if opts.Delimiter != 0 {
		w.Comma = opts.Delimiter
	}
	if err := w.WriteAll(table); err != nil {
		return nil, err
	}
	if enc == nil {
		return buf.Bytes(), nil
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Encoding, err)
	}
	return out, nil
}

// Write validates the file name, encodes the table in memory and writes it.
// Nothing is written when validation or encoding fails.
func Write(path string, table [][]string, opts Options) error {
	if err := ValidateFileName(path, opts.Suffix); err != nil {
		return err
	}
	data, err := Encode(table, opts)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// lookupEncoding returns nil for UTF-8, which needs no transform.
func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}
