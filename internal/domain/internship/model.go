package internship

// Track is one internship offering listed on the public site.
type Track struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Mode        string   `json:"mode"`
	Level       string   `json:"level,omitempty"`
	Stipend     string   `json:"stipend,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
}
