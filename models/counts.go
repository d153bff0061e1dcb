package models

// Counts is the dashboard projection of the incident collection. It is
// derived, never mutated directly; callers recompute it from scratch after
// every mutation.
type Counts struct {
	OnAir      int `json:"onair"`
	Invitation int `json:"invitation"`
	Pending    int `json:"pending"`
	Started    int `json:"started"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}
