package model

// Snippet is one web search hit.
type Snippet struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
