package types

// Message types exchanged over the widget websocket.
const (
	MessageLoad         = "load"
	MessageInput        = "input"
	MessageClickOutside = "click_outside"
	MessagePanel        = "panel"
	MessageHello        = "hello"
)

// ClientMessage is sent by the intention bar script.
type ClientMessage struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	URL   string `json:"url,omitempty"`
	HTML  string `json:"html,omitempty"`
}

// PanelMessage tells the script what the results panel shows.
type PanelMessage struct {
	Type    string `json:"type"`
	Visible bool   `json:"visible"`
	HTML    string `json:"html"`
}

// HelloMessage opens every session and tells the script how large a load
// message may be.
type HelloMessage struct {
	Type             string `json:"type"`
	MaxSnapshotBytes int64  `json:"max_snapshot_bytes"`
}
