package models

// RadarFrame is one radar tile layer: a unix timestamp and the tile path
// to interpolate into the host's tile URL template.
type RadarFrame struct {
	Time int64  `json:"time"`
	Path string `json:"path"`
}

// RadarIndex is the animation frame set for the radar overlay: two hours
// of past frames plus the short nowcast, as served by RainViewer.
type RadarIndex struct {
	Host    string       `json:"host"`
	Past    []RadarFrame `json:"past"`
	Nowcast []RadarFrame `json:"nowcast"`
}
