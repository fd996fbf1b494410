package model

// PosterProbeCard is one poster to check
type PosterProbeCard struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// PosterProbePayload is the task payload of a poster probe. Token is the
// region's request token when the grid was filled; results for a grid that
// has since been replaced are discarded.
type PosterProbePayload struct {
	SessionID string            `json:"sessionId"`
	Region    Region            `json:"region"`
	Token     string            `json:"token"`
	Cards     []PosterProbeCard `json:"cards"`
}
