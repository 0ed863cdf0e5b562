package api

// ErrorItem is a single build or compilation error reported by GET /errors.
type ErrorItem struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

// ErrorResponse is the error envelope returned by the bridge on failed
// requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
