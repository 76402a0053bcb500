package model

// RenderRequest is the serve-mode payload: one or more SQL statements plus
// values for their named bind parameters. When Author or Title is set the
// response is a complete document instead of a fragment.
type RenderRequest struct {
	SQL    string         `json:"sql"`
	Params map[string]any `json:"params,omitempty"`
	Author string         `json:"author,omitempty"`
	Title  string         `json:"title,omitempty"`
}
