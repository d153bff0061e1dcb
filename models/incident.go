package models

import "time"

// Incident holds the structure for an incident report as exchanged with the
// backend API and mirrored in the local cache.
type Incident struct {
	ID            string         `json:"id" validate:"required"`
	Shcad         string         `json:"shcad"`
	Title         string         `json:"title" validate:"required"`
	Type          string         `json:"type" validate:"required"`
	Description   string         `json:"description" validate:"required,minwords=10"`
	Status        string         `json:"status"`
	Address       string         `json:"address" validate:"required"`
	Postcode      string         `json:"postcode"`
	Location      *Location      `json:"location"`
	Caller        Caller         `json:"caller"`
	Victims       []Participant  `json:"victims"`
	Witnesses     []Participant  `json:"witnesses"`
	Suspects      []Participant  `json:"suspects"`
	AssignedUsers []string       `json:"assignedUsers"`
	InvitedUsers  []string       `json:"invitedUsers"`
	Notes         []Note         `json:"notes"`
	FollowUp      string         `json:"followUp"`
	Questions     string         `json:"questions"`
	VehicleInfo   VehicleInfo    `json:"vehicleInfo"`
	PoliceInfo    PoliceInfo     `json:"policeInfo"`
	ArrestInfo    ArrestInfo     `json:"arrestInfo"`
	History       []HistoryEntry `json:"history"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Location holds optional incident coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Caller holds the structure for the person who reported the incident.
type Caller struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IsVictim  bool   `json:"isVictim"`
	IsWitness bool   `json:"isWitness"`
}

// Participant holds the structure for a victim, witness or suspect attached
// to an incident.
type Participant struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Note holds the structure for a free-text note on an incident.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryEntry holds one row of the append-only incident audit trail.
type HistoryEntry struct {
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// VehicleInfo holds optional vehicle details attached to an incident.
type VehicleInfo struct {
	Registration string `json:"registration"`
	MakeModel    string `json:"makeModel"`
	Color        string `json:"color"`
}

// PoliceInfo holds the police reference fields for an incident.
type PoliceInfo struct {
	CadRef         string     `json:"cadRef"`
	CrisRef        string     `json:"crisRef"`
	ChsRef         string     `json:"chsRef"`
	CadDate        *time.Time `json:"cadDate"`
	CrisDate       *time.Time `json:"crisDate"`
	ChsDate        *time.Time `json:"chsDate"`
	OfficerName    string     `json:"officerName"`
	OfficerBadge   string     `json:"officerBadge"`
	ReportToPolice bool       `json:"reportToPolice"`
}

// ArrestInfo holds the arrest summary for an incident.
type ArrestInfo struct {
	ArrestMade  bool   `json:"arrestMade"`
	ArrestCount int    `json:"arrestCount"`
	Description string `json:"description"`
}

// IsAssigned reports whether the named user is committed to the incident.
func (i *Incident) IsAssigned(name string) bool {
	return containsString(i.AssignedUsers, name)
}

// IsInvited reports whether the named user has an unresolved invitation on
// the incident.
func (i *Incident) IsInvited(name string) bool {
	return containsString(i.InvitedUsers, name)
}

// AppendHistory adds an audit entry and bumps the updated timestamp. History
// is append-only; nothing ever removes or rewrites earlier entries.
func (i *Incident) AppendHistory(action, user string) {
	now := time.Now().UTC()
	i.History = append(i.History, HistoryEntry{Action: action, User: user, Timestamp: now})
	i.UpdatedAt = now
}

// Clone returns a deep copy so a transition can be staged without touching
// the copy held by the store.
func (i *Incident) Clone() *Incident {
	out := *i
	if i.Location != nil {
		loc := *i.Location
		out.Location = &loc
	}
	out.Victims = append([]Participant(nil), i.Victims...)
	out.Witnesses = append([]Participant(nil), i.Witnesses...)
	out.Suspects = append([]Participant(nil), i.Suspects...)
	out.AssignedUsers = append([]string(nil), i.AssignedUsers...)
	out.InvitedUsers = append([]string(nil), i.InvitedUsers...)
	out.Notes = append([]Note(nil), i.Notes...)
	out.History = append([]HistoryEntry(nil), i.History...)
	return &out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
