package host

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/novel-matrix/internal/novel"
)

// FileProject is a project stored as a single YAML document.
type FileProject struct {
	path string
}

// NewFileProject binds a project file path.
func NewFileProject(path string) *FileProject {
	return &FileProject{path: path}
}

// Name returns the file path.
func (p *FileProject) Name() string {
	return p.path
}

// Load parses the project file.
func (p *FileProject) Load() (*novel.Novel, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var n novel.Novel
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", filepath.Base(p.path), err)
	}
	if n.Scenes == nil {
		n.Scenes = map[string]*novel.Scene{}
	}
	return &n, nil
}

// Save writes the project through a temp file and a rename, so a failed
// write leaves the previous file intact.
func (p *FileProject) Save(n *novel.Novel) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(p.path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), "."+filepath.Base(p.path)+".*")
	if err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}
