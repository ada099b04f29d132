package host

import (
	"errors"
	"strings"
	"time"

	"github.com/gravitrone/novel-matrix/internal/api"
	"github.com/gravitrone/novel-matrix/internal/novel"
)

// ErrNoProject is returned when neither a project file nor a bridge URL is
// configured.
var ErrNoProject = errors.New("no project: pass a project file or --host")

// Project is where the novel lives. Load returns a fresh snapshot; Save
// persists every scene's relationship facets.
type Project interface {
	Load() (*novel.Novel, error)
	Save(*novel.Novel) error
	Name() string
}

// Open picks the bridge when hostURL is set, else the project file. A zero
// timeout keeps the client default.
func Open(path, hostURL, token string, timeout time.Duration) (Project, error) {
	if strings.TrimSpace(hostURL) != "" {
		client := api.NewClient(hostURL, token)
		if timeout > 0 {
			client = client.WithTimeout(timeout)
		}
		return NewRemoteProject(client), nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoProject
	}
	return NewFileProject(path), nil
}
