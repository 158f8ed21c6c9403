package employee

// Employee is one staff member managed from the admin console.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Image      string `json:"image,omitempty"`
}
