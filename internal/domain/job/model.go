package job

// Job is one open position on the careers page.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Department  string   `json:"department,omitempty"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Experience  string   `json:"experience,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
}
