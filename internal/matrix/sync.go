package matrix

import (
	"errors"
	"fmt"

	"github.com/gravitrone/novel-matrix/internal/novel"
)

// ErrUnknownScene is returned by Commit when a grid row no longer exists in
// the project.
var ErrUnknownScene = errors.New("scene not found in project")

// Load derives the labels from the project and seeds a clean grid from the
// scenes' association facets.
func Load(n *novel.Novel) *Grid {
	labels := Derive(n)
	g := NewGrid(labels)
	for _, row := range labels.Rows {
		sc := n.Scene(row.Key)
		for _, c := range Categories {
			for _, col := range labels.Columns(c) {
				g.put(row.Key, c, col.Key, member(sc, c, col.Key, labels.Subplot))
			}
		}
	}
	return g
}

// member is the total membership test: a missing scene or facet is false.
func member(sc *novel.Scene, c Category, key string, subplot bool) bool {
	if sc == nil {
		return false
	}
	switch c {
	case Arc:
		if subplot {
			return key == SubplotArc && sc.IsSubplot
		}
		return novel.Contains(sc.ArcList(), key)
	case Character:
		return novel.Contains(sc.Characters, key)
	case Location:
		return novel.Contains(sc.Locations, key)
	case Item:
		return novel.Contains(sc.Items, key)
	}
	return false
}

type sceneUpdate struct {
	scene      *novel.Scene
	arcs       []string
	characters []string
	locations  []string
	items      []string
}

// Commit overwrites the association facets of every row's scene with the
// grid state. Facet lists follow column declaration order. With the Subplot
// synthesis active, the arc axis sets the scene's subplot flag instead of its
// arc text.
//
// All updates are computed before the project is touched; an error leaves the
// project unchanged.
func Commit(g *Grid, n *novel.Novel) error {
	labels := g.Labels()
	updates := make([]sceneUpdate, 0, len(labels.Rows))
	for _, row := range labels.Rows {
		sc := n.Scene(row.Key)
		if sc == nil {
			return fmt.Errorf("commit %q: %w", row.Key, ErrUnknownScene)
		}
		updates = append(updates, sceneUpdate{
			scene:      sc,
			arcs:       g.Marked(row.Key, Arc),
			characters: g.Marked(row.Key, Character),
			locations:  g.Marked(row.Key, Location),
			items:      g.Marked(row.Key, Item),
		})
	}

	for _, u := range updates {
		if labels.Subplot {
			u.scene.IsSubplot = len(u.arcs) > 0
		} else {
			u.scene.SetArcList(u.arcs)
		}
		u.scene.Characters = u.characters
		u.scene.Locations = u.locations
		u.scene.Items = u.items
	}
	return nil
}

// --- Pending Changes ---

// Change describes how one scene's facet differs between the grid and the
// project.
type Change struct {
	SceneID    string
	SceneTitle string
	Category   Category
	Added      []string
	Removed    []string
}

// Changes lists the facet differences a Commit would write, in row then
// category order. Added and Removed hold column titles.
func Changes(g *Grid, n *novel.Novel) []Change {
	labels := g.Labels()
	var out []Change
	for _, row := range labels.Rows {
		sc := n.Scene(row.Key)
		for _, c := range Categories {
			ch := Change{SceneID: row.Key, SceneTitle: row.Title, Category: c}
			for _, col := range labels.Columns(c) {
				want := g.Get(row.Key, c, col.Key)
				have := member(sc, c, col.Key, labels.Subplot)
				switch {
				case want && !have:
					ch.Added = append(ch.Added, col.Title)
				case !want && have:
					ch.Removed = append(ch.Removed, col.Title)
				}
			}
			if len(ch.Added) > 0 || len(ch.Removed) > 0 {
				out = append(out, ch)
			}
		}
	}
	return out
}
