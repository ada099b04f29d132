package matrix

import (
	"strings"

	"github.com/gravitrone/novel-matrix/internal/novel"
)

// SubplotArc is the pseudo-arc synthesized for projects that only use the
// legacy subplot flag.
const SubplotArc = "Subplot"

// --- Categories ---

// Category is one column axis of the matrix.
type Category int

const (
	Arc Category = iota
	Character
	Location
	Item
)

// Categories lists every axis in display and export order.
var Categories = []Category{Arc, Character, Location, Item}

func (c Category) String() string {
	switch c {
	case Arc:
		return "Arcs"
	case Character:
		return "Characters"
	case Location:
		return "Locations"
	case Item:
		return "Items"
	}
	return "Unknown"
}

// --- Labels ---

// Column is a row or column header: a stable key plus its display title.
type Column struct {
	Key   string
	Title string
}

// Labels holds the ordered row set and the per-category column sets.
type Labels struct {
	Rows       []Column
	Arcs       []Column
	Characters []Column
	Locations  []Column
	Items      []Column

	// Subplot is true when the arc axis is the synthesized Subplot column.
	Subplot bool
}

// Columns returns the ordered columns of one category.
func (l *Labels) Columns(c Category) []Column {
	switch c {
	case Arc:
		return l.Arcs
	case Character:
		return l.Characters
	case Location:
		return l.Locations
	case Item:
		return l.Items
	}
	return nil
}

// Keys returns the ordered column keys of one category.
func (l *Labels) Keys(c Category) []string {
	return keys(l.Columns(c))
}

// RowKeys returns the ordered scene IDs.
func (l *Labels) RowKeys() []string {
	return keys(l.Rows)
}

func keys(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

// Derive scans the project and builds the matrix labels.
//
// Rows are the normal scenes of normal chapters in chapter-then-scene order.
// A scene listed by several chapters is one row. Arcs come from todo-chapter
// arc definitions first, one arc per chapter, then from scene tags, in
// first-seen order. Characters, locations and items are the full registries.
func Derive(n *novel.Novel) Labels {
	var l Labels
	if n == nil {
		return l
	}

	var arcs []string
	seenArc := map[string]bool{}
	addArc := func(arc string) {
		if arc == "" || seenArc[arc] {
			return
		}
		seenArc[arc] = true
		arcs = append(arcs, arc)
	}

	var scenes []*novel.Scene
	seenRow := map[string]bool{}
	for _, ch := range n.Chapters {
		if ch == nil {
			continue
		}
		switch ch.Type {
		case novel.ChapterTodo:
			addArc(strings.TrimSpace(ch.ArcDefinition))
		case novel.ChapterNormal:
			for _, id := range ch.SceneIDs {
				sc := n.Scene(id)
				if sc == nil || sc.Type != novel.SceneNormal || seenRow[id] {
					continue
				}
				seenRow[id] = true
				scenes = append(scenes, sc)
				l.Rows = append(l.Rows, Column{Key: id, Title: sc.Title})
			}
		}
	}

	hasSubplot := false
	for _, sc := range scenes {
		for _, arc := range sc.ArcList() {
			addArc(arc)
		}
		if sc.IsSubplot {
			hasSubplot = true
		}
	}
	if hasSubplot && len(arcs) == 0 {
		l.Subplot = true
		arcs = append(arcs, SubplotArc)
	}

	for _, arc := range arcs {
		l.Arcs = append(l.Arcs, Column{Key: arc, Title: arc})
	}
	l.Characters = registryColumns(n.Characters)
	l.Locations = registryColumns(n.Locations)
	l.Items = registryColumns(n.Items)
	return l
}

func registryColumns(elems []novel.Element) []Column {
	var out []Column
	seen := map[string]bool{}
	for _, e := range elems {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, Column{Key: e.ID, Title: e.Title})
	}
	return out
}
