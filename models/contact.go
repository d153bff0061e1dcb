package models

// Contact holds one entry of the shared contact directory.
type Contact struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Callsign string `json:"callsign"`
}
