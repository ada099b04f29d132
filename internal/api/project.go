package api

import (
	"fmt"
	"net/url"

	"github.com/gravitrone/novel-matrix/internal/novel"
)

// --- Project Methods ---

// GetProject fetches the whole project snapshot.
func (c *Client) GetProject() (*Project, error) {
	data, err := c.get("/api/project")
	if err != nil {
		return nil, err
	}
	return decodeOne[Project](data)
}

// PutSceneRelations replaces the relationship facets of one scene.
func (c *Client) PutSceneRelations(sceneID string, input SceneRelations) (*novel.Scene, error) {
	data, err := c.put(fmt.Sprintf("/api/scenes/%s/relations", url.PathEscape(sceneID)), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[novel.Scene](data)
}
