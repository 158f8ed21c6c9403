package offering

// Offering is one service line shown on the public services page.
type Offering struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
}
