package novel

import "strings"

// --- Kinds ---

// ChapterType mirrors the host's chapter kind discriminant.
type ChapterType int

const (
	ChapterNormal ChapterType = iota
	ChapterNotes
	ChapterTodo
	ChapterUnused
)

// SceneType mirrors the host's scene kind discriminant.
type SceneType int

const (
	SceneNormal SceneType = iota
	SceneNotes
	SceneTodo
	SceneUnused
)

// TagDivider separates arc names inside a scene's arc field.
const TagDivider = ";"

// --- Project Model ---

// Novel is the host project as seen by the matrix. Chapters and the element
// registries are ordered; scenes are looked up by ID.
type Novel struct {
	Title      string            `json:"title" yaml:"title"`
	Chapters   []*Chapter        `json:"chapters" yaml:"chapters"`
	Scenes     map[string]*Scene `json:"scenes" yaml:"scenes"`
	Characters []Element         `json:"characters" yaml:"characters"`
	Locations  []Element         `json:"locations" yaml:"locations"`
	Items      []Element         `json:"items" yaml:"items"`
}

// Chapter groups scenes. Todo chapters may carry an arc definition.
type Chapter struct {
	ID            string      `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	Type          ChapterType `json:"type" yaml:"type"`
	ArcDefinition string      `json:"arc_definition,omitempty" yaml:"arc_definition,omitempty"`
	SceneIDs      []string    `json:"scene_ids" yaml:"scene_ids"`
}

// Scene is a single row candidate. Arcs holds the host's raw tag text.
type Scene struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Type       SceneType `json:"type" yaml:"type"`
	Arcs       string    `json:"arcs,omitempty" yaml:"arcs,omitempty"`
	IsSubplot  bool      `json:"is_subplot,omitempty" yaml:"is_subplot,omitempty"`
	Characters []string  `json:"characters,omitempty" yaml:"characters,omitempty"`
	Locations  []string  `json:"locations,omitempty" yaml:"locations,omitempty"`
	Items      []string  `json:"items,omitempty" yaml:"items,omitempty"`
}

// Element is a registry entry (character, location or item).
type Element struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Scene returns the scene with the given ID, or nil.
func (n *Novel) Scene(id string) *Scene {
	if n == nil || n.Scenes == nil {
		return nil
	}
	return n.Scenes[id]
}

// ArcList returns the scene's arc names in stored order.
func (s *Scene) ArcList() []string {
	if s == nil {
		return nil
	}
	return SplitTags(s.Arcs)
}

// SetArcList replaces the scene's arc text.
func (s *Scene) SetArcList(arcs []string) {
	s.Arcs = JoinTags(arcs)
}

// SplitTags splits divider-separated text into unique, trimmed, non-empty
// names. Order of first occurrence is kept.
func SplitTags(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(text, TagDivider) {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagDivider)
}

// Clone returns a deep copy, so a commit can be staged without touching the
// live project.
func (n *Novel) Clone() *Novel {
	if n == nil {
		return nil
	}
	out := &Novel{
		Title:      n.Title,
		Characters: append([]Element(nil), n.Characters...),
		Locations:  append([]Element(nil), n.Locations...),
		Items:      append([]Element(nil), n.Items...),
	}
	if n.Chapters != nil {
		out.Chapters = make([]*Chapter, len(n.Chapters))
		for i, ch := range n.Chapters {
			if ch == nil {
				continue
			}
			c := *ch
			c.SceneIDs = append([]string(nil), ch.SceneIDs...)
			out.Chapters[i] = &c
		}
	}
	if n.Scenes != nil {
		out.Scenes = make(map[string]*Scene, len(n.Scenes))
		for id, sc := range n.Scenes {
			if sc == nil {
				out.Scenes[id] = nil
				continue
			}
			s := *sc
			s.Characters = cloneIDs(sc.Characters)
			s.Locations = cloneIDs(sc.Locations)
			s.Items = cloneIDs(sc.Items)
			out.Scenes[id] = &s
		}
	}
	return out
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	return append([]string{}, ids...)
}

// Contains reports whether id is in ids. A nil slice contains nothing.
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
