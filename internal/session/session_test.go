package session

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/novel-matrix/internal/export"
	"github.com/gravitrone/novel-matrix/internal/host"
	"github.com/gravitrone/novel-matrix/internal/matrix"
	"github.com/gravitrone/novel-matrix/internal/novel"
)

type memProject struct {
	stored  *novel.Novel
	saves   int
	loadErr error
	saveErr error
}

func (m *memProject) Load() (*novel.Novel, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.stored.Clone(), nil
}

func (m *memProject) Save(n *novel.Novel) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.stored = n.Clone()
	return nil
}

func (m *memProject) Name() string { return "mem" }

func sample() *novel.Novel {
	return &novel.Novel{
		Title:    "Harbor Lights",
		Chapters: []*novel.Chapter{{ID: "ch1", SceneIDs: []string{"s1", "s2"}}},
		Scenes: map[string]*novel.Scene{
			"s1": {ID: "s1", Title: "Opening", Arcs: "Main", Characters: []string{"c1"}},
			"s2": {ID: "s2", Title: "Storm"},
		},
		Characters: []novel.Element{{ID: "c1", Title: "Alice"}, {ID: "c2", Title: "Bob"}},
	}
}

func TestOpenLogsProjectShape(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	s, err := Open(&memProject{stored: sample()}, log)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Lights", s.Name())
	assert.False(t, s.Dirty())
	labels := s.Labels()
	assert.Equal(t, []string{"s1", "s2"}, labels.RowKeys())
	assert.Contains(t, buf.String(), "project opened")
	assert.Contains(t, buf.String(), "rows=2")
}

func TestOpenLoadFailure(t *testing.T) {
	_, err := Open(&memProject{loadErr: os.ErrNotExist}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyPersistsAndReloads(t *testing.T) {
	p := &memProject{stored: sample()}
	s, err := Open(p, nil)
	require.NoError(t, err)

	assert.True(t, s.Toggle("s2", matrix.Character, "c1"))
	assert.False(t, s.Toggle("s1", matrix.Arc, "Main"))
	assert.True(t, s.Dirty())
	require.Len(t, s.Changes(), 2)

	require.NoError(t, s.Apply())
	assert.Equal(t, 1, p.saves)
	assert.False(t, s.Dirty())
	assert.Empty(t, s.Changes())
	assert.Equal(t, []string{"c1"}, p.stored.Scene("s2").Characters)
	assert.Equal(t, "", p.stored.Scene("s1").Arcs)
	assert.True(t, s.Grid().Get("s2", matrix.Character, "c1"))
}

func TestApplyFailureKeepsStateAndDirty(t *testing.T) {
	p := &memProject{stored: sample(), saveErr: errors.New("disk full")}
	s, err := Open(p, nil)
	require.NoError(t, err)
	before := s.novel.Clone()

	s.Toggle("s2", matrix.Character, "c2")
	err = s.Apply()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Contains(t, err.Error(), "disk full")

	assert.True(t, s.Dirty())
	assert.True(t, s.Grid().Get("s2", matrix.Character, "c2"))
	assert.Equal(t, before, s.novel)
	assert.Equal(t, 0, p.saves)

	p.saveErr = nil
	require.NoError(t, s.Apply())
	assert.Equal(t, []string{"c2"}, p.stored.Scene("s2").Characters)
}

func TestApplyUnknownSceneIsPersistError(t *testing.T) {
	p := &memProject{stored: sample()}
	s, err := Open(p, nil)
	require.NoError(t, err)

	delete(s.novel.Scenes, "s2")
	err = s.Apply()
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, matrix.ErrUnknownScene)
	assert.Equal(t, 0, p.saves)
}

func TestReloadDiscardsEdits(t *testing.T) {
	s, err := Open(&memProject{stored: sample()}, nil)
	require.NoError(t, err)

	s.Toggle("s1", matrix.Character, "c2")
	require.NoError(t, s.Reload())
	assert.False(t, s.Dirty())
	assert.False(t, s.Grid().Get("s1", matrix.Character, "c2"))
}

func TestExportIncludesPendingEdits(t *testing.T) {
	s, err := Open(&memProject{stored: sample()}, nil)
	require.NoError(t, err)
	s.Toggle("s2", matrix.Character, "c2")

	path := filepath.Join(t.TempDir(), "harbor_relationships.csv")
	require.NoError(t, s.Export(path, export.DefaultOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ",,Main,Alice,Bob\n1,Opening,A,C,\n2,Storm,,,C\n", string(data))
}

func TestExportRejectsBadName(t *testing.T) {
	s, err := Open(&memProject{stored: sample()}, nil)
	require.NoError(t, err)

	err = s.Export(filepath.Join(t.TempDir(), "harbor.csv"), export.DefaultOptions())
	assert.ErrorIs(t, err, export.ErrInvalidFileName)
}

func TestDefaultExportPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.novel.yaml")
	require.NoError(t, host.NewFileProject(path).Save(sample()))

	s, err := Open(host.NewFileProject(path), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "book_relationships.csv"), s.DefaultExportPath(export.DefaultSuffix))

	m, err := Open(&memProject{stored: sample()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "harbor_lights_relationships.csv", m.DefaultExportPath(export.DefaultSuffix))
}

func TestTitleStem(t *testing.T) {
	assert.Equal(t, "project", titleStem(""))
	assert.Equal(t, "project", titleStem("!!!"))
	assert.Equal(t, "my_book-2", titleStem(" My Book-2 "))
}

func TestStagePersistAcceptSplit(t *testing.T) {
	p := &memProject{stored: sample()}
	s, err := Open(p, nil)
	require.NoError(t, err)
	s.Toggle("s2", matrix.Character, "c2")

	pending, err := s.Stage()
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Changes())
	assert.True(t, s.Dirty(), "staging must not touch the grid")
	assert.Nil(t, s.novel.Scene("s2").Characters)

	require.NoError(t, s.Persist(pending))
	assert.True(t, s.Dirty())
	assert.Equal(t, []string{"c2"}, p.stored.Scene("s2").Characters)

	s.Accept(pending)
	assert.False(t, s.Dirty())
	assert.Equal(t, []string{"c2"}, s.novel.Scene("s2").Characters)
}

func TestFetchReplace(t *testing.T) {
	p := &memProject{stored: sample()}
	s, err := Open(p, nil)
	require.NoError(t, err)

	p.stored.Scene("s2").Characters = []string{"c1"}
	n, err := s.Fetch()
	require.NoError(t, err)
	assert.False(t, s.Grid().Get("s2", matrix.Character, "c1"))

	s.Replace(n)
	assert.True(t, s.Grid().Get("s2", matrix.Character, "c1"))
}
