package models

// User availability, as reported by the backend rosters.
const AvailabilityAvailable = "available"

// Patrol roles.
const (
	RoleAdmin       = "Admin"
	RoleCoordinator = "Coordinator"
	RoleDispatcher  = "Dispatcher"
	RoleMember      = "Member"
)

// User holds the structure for a patrol member record. The phone number is
// the primary identity everywhere, including incident visibility queries.
type User struct {
	Phone    string `json:"phone" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email"`
	Callsign string `json:"callsign"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
	OnDuty   bool   `json:"on_duty"`
	OnPatrol bool   `json:"on_patrol"`
	Status   string `json:"status,omitempty"`
}
