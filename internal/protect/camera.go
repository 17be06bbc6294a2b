package protect

import "strings"

// Camera is the subset of Protect camera metadata the pipeline uses. Cameras
// are resolved fresh every cycle and never cached.
type Camera struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var pathHostile = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// SafeName derives the camera's filesystem directory name from its display
// name, falling back to the stable ID when the name is empty.
func (c Camera) SafeName() string {
	if c.Name == "" {
		return c.ID
	}
	return pathHostile.Replace(c.Name)
}
