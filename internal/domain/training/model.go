package training

// Program is one paid training course.
type Program struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Level       string   `json:"level,omitempty"`
	Price       string   `json:"price,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
}
