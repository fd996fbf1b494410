package model

// WebSocket message types
const (
	WSMessageTypeToast          = "toast"
	WSMessageTypePosterFallback = "poster-fallback"
	WSMessageTypePing           = "ping"
	WSMessageTypePong           = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// Toast is a transient notification shown by the page
type Toast struct {
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}

// WSToastMessage carries a toast to the page
type WSToastMessage struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}

// WSPosterFallbackMessage tells the page to swap a card's poster for the placeholder
type WSPosterFallbackMessage struct {
	Type   string `json:"type"`
	Region Region `json:"region"`
	CardID int    `json:"cardId"`
	URL    string `json:"url"`
}
