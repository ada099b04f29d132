package host

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gravitrone/novel-matrix/internal/api"
	"github.com/gravitrone/novel-matrix/internal/novel"
)

// RemoteProject talks to a running host application over its bridge.
type RemoteProject struct {
	client *api.Client
	last   *novel.Novel
}

// NewRemoteProject wraps a bridge client.
func NewRemoteProject(client *api.Client) *RemoteProject {
	return &RemoteProject{client: client}
}

// Name returns the bridge URL.
func (p *RemoteProject) Name() string {
	return p.client.BaseURL()
}

// Ping checks the bridge is reachable and ready.
func (p *RemoteProject) Ping() error {
	err := p.client.Ping()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrNotReady):
		return fmt.Errorf("host unhealthy: %w", err)
	default:
		return fmt.Errorf("host unreachable: %w", err)
	}
}

// Load fetches the project and remembers it as the base for Save.
func (p *RemoteProject) Load() (*novel.Novel, error) {
	n, err := p.client.GetProject()
	if err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	if n.Scenes == nil {
		n.Scenes = map[string]*novel.Scene{}
	}
	p.last = n.Clone()
	return n, nil
}

// Save sends the relations of every scene that differs from the last loaded
// snapshot, in scene ID order. Facets compare as sets, so a commit that only
// reorders IDs or respaces arc tags sends nothing. It stops at the first
// failure.
func (p *RemoteProject) Save(n *novel.Novel) error {
	ids := make([]string, 0, len(n.Scenes))
	for id := range n.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sc := n.Scenes[id]
		if sc == nil {
			continue
		}
		if prev := p.last.Scene(id); prev != nil && sameRelations(prev, sc) {
			continue
		}
		if _, err := p.client.PutSceneRelations(id, api.RelationsOf(sc)); err != nil {
			return fmt.Errorf("save scene %s: %w", id, err)
		}
	}
	p.last = n.Clone()
	return nil
}

func sameRelations(a, b *novel.Scene) bool {
	return a.IsSubplot == b.IsSubplot &&
		sameSet(a.ArcList(), b.ArcList()) &&
		sameSet(a.Characters, b.Characters) &&
		sameSet(a.Locations, b.Locations) &&
		sameSet(a.Items, b.Items)
}

func sameSet(a, b []string) bool {
	left := make(map[string]bool, len(a))
	for _, v := range a {
		left[v] = true
	}
	right := make(map[string]bool, len(b))
	for _, v := range b {
		if !left[v] {
			return false
		}
		right[v] = true
	}
	return len(left) == len(right)
}
