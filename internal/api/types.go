package api

import (
	"fmt"

	"github.com/gravitrone/novel-matrix/internal/novel"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusError is returned for any response with status >= 400.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return e.Message
}

// --- Project ---

// Project is the full project snapshot served by the bridge.
type Project = novel.Novel

// SceneRelations is the per-scene payload written back on commit.
type SceneRelations struct {
	Arcs       string   `json:"arcs"`
	IsSubplot  bool     `json:"is_subplot"`
	Characters []string `json:"characters"`
	Locations  []string `json:"locations"`
	Items      []string `json:"items"`
}

// RelationsOf extracts the committed facets of a scene.
func RelationsOf(sc *novel.Scene) SceneRelations {
	return SceneRelations{
		Arcs:       sc.Arcs,
		IsSubplot:  sc.IsSubplot,
		Characters: nonNil(sc.Characters),
		Locations:  nonNil(sc.Locations),
		Items:      nonNil(sc.Items),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
