package domain

import (
	"errors"
	"strings"
	"time"
)

// ApplicationStatus is the review state of an artist application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Reviewable reports whether an admin may still approve or reject.
// Applications never move back to pending once reviewed.
func (s ApplicationStatus) Reviewable() bool {
	return s == StatusPending
}

// Message is the explanation shown to the applicant for each status.
func (s ApplicationStatus) Message() string {
	switch s {
	case StatusApproved:
		return "Congratulations! Your application has been approved. You now have artist privileges."
	case StatusRejected:
		return "Unfortunately, your application was not approved at this time. You can submit a new application."
	default:
		return "Your application is being reviewed. We'll get back to you within 3-5 business days."
	}
}

// Application is an artist's submission awaiting or past admin review.
type Application struct {
	ID             string            `json:"_id"`
	UserID         string            `json:"user_id"`
	Email          string            `json:"email,omitempty"`
	StageName      string            `json:"stage_name"`
	Genres         []string          `json:"genres"`
	Bio            string            `json:"bio"`
	PortfolioLinks []string          `json:"portfolio_links"`
	Status         ApplicationStatus `json:"status"`
	ReviewedBy     string            `json:"reviewed_by,omitempty"`
	CreatedAt      Timestamp         `json:"created_at"`
	UpdatedAt      Timestamp         `json:"updated_at"`
}

// ApplicationInput is the payload of an artist submission. Genre and
// PortfolioLinks are sent as entered; the backend splits them.
type ApplicationInput struct {
	StageName      string `json:"stage_name"      form:"stage_name"      validate:"required,max=100"`
	Genre          string `json:"genre"           form:"genre"           validate:"required,oneof=rock pop jazz classical electronic hip-hop country folk r&b indie other"`
	Bio            string `json:"bio"             form:"bio"             validate:"required,min=50"`
	PortfolioLinks string `json:"portfolio_links" form:"portfolio_links"`
}

// MinBioLength is the shortest bio accepted by the application form.
const MinBioLength = 50

// Genres lists the selectable primary genres as value/label pairs.
var Genres = []struct{ Value, Label string }{
	{"rock", "Rock"},
	{"pop", "Pop"},
	{"jazz", "Jazz"},
	{"classical", "Classical"},
	{"electronic", "Electronic"},
	{"hip-hop", "Hip Hop"},
	{"country", "Country"},
	{"folk", "Folk"},
	{"r&b", "R&B"},
	{"indie", "Indie"},
	{"other", "Other"},
}

// KnownGenre reports whether v is one of the selectable genre values.
func KnownGenre(v string) bool {
	for _, g := range Genres {
		if g.Value == v {
			return true
		}
	}
	return false
}

// CanSubmit mirrors the form's submit control: disabled until the bio is long enough.
func (in ApplicationInput) CanSubmit() bool {
	return len([]rune(in.Bio)) >= MinBioLength
}

// Stats is the backend's aggregate snapshot for the admin dashboard.
type Stats struct {
	TotalUsers           int `json:"total_users"`
	TotalArtists         int `json:"total_artists"`
	PendingApplications  int `json:"pending_applications"`
	ApprovedApplications int `json:"approved_applications"`
	RejectedApplications int `json:"rejected_applications"`
}

// Timestamp accepts the backend's ISO-8601 datetimes, with or without zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return errors.New("timestamp: unrecognised format " + s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
