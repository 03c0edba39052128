package server

// CreateTabRequest represents the payload required to record an open tab.
type CreateTabRequest struct {
	URL     string `json:"url" example:"https://example.com"`
	Title   string `json:"title" example:"Example Domain"`
	Favicon string `json:"favicon" example:"https://example.com/favicon.ico"`
}

// CreateBookmarkRequest represents the payload for saving a bookmark.
type CreateBookmarkRequest struct {
	URL     string `json:"url" example:"https://example.com"`
	Title   string `json:"title" example:"Example Domain"`
	Favicon string `json:"favicon" example:"https://example.com/favicon.ico"`
	Folder  string `json:"folder" example:"Reading"`
}

// AddHistoryRequest represents a page visit reported by the extension.
type AddHistoryRequest struct {
	URL     string `json:"url" example:"https://example.com"`
	Title   string `json:"title" example:"Example Domain"`
	Favicon string `json:"favicon" example:"https://example.com/favicon.ico"`
}

// AnalyzeRequest asks for a security/privacy analysis of one URL.
type AnalyzeRequest struct {
	URL string `json:"url" example:"example.com"`
}

// AnalyzeBatchRequest asks for analyses of several URLs at once, e.g. all
// currently open tabs.
type AnalyzeBatchRequest struct {
	URLs []string `json:"urls" example:"[\"example.com\",\"https://go.dev\"]"`
}

// MessageResponse is a uniform informational payload.
type MessageResponse struct {
	Message string `json:"message" example:"Tab deleted"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
