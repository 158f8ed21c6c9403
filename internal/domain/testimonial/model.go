package testimonial

// Testimonial is one client or student quote.
type Testimonial struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating,omitempty"`
	Image  string `json:"image,omitempty"`
}
