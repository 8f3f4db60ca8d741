// Package catalog holds the static FoTI content: students, tours and
// research papers, with lookups by id.
package catalog

import "time"

// Role is a student's academic standing.
type Role string

// Student roles.
const (
	RoleUndergraduate Role = "Undergraduate"
	RolePostgraduate  Role = "Postgraduate"
	RoleResearcher    Role = "Think Tank Researcher"
)

// Student is a member of the talent pool who curates tours and writes papers.
type Student struct {
	ID        string
	Name      string
	Avatar    string
	Role      Role
	Specialty string
	Bio       string
}

// Tour is a research-based experience sold in the marketplace.
// Price is in whole US dollars.
type Tour struct {
	ID             string
	Title          string
	Description    string
	Price          int
	Duration       string
	Location       string
	Image          string
	StudentID      string
	Tags           []string
	DocumentaryURL string // optional
	PaperTitle     string // optional
	Rating         float64
}

// HasDocumentary reports whether the tour links a documentary.
func (t Tour) HasDocumentary() bool { return t.DocumentaryURL != "" }

// HasPaper reports whether the tour produced a research paper.
func (t Tour) HasPaper() bool { return t.PaperTitle != "" }

// PrimaryTags returns at most the first two tags, as shown on tour cards.
func (t Tour) PrimaryTags() []string {
	if len(t.Tags) <= 2 {
		return t.Tags
	}
	return t.Tags[:2]
}

// ResearchPaper is an entry in the FoTI Journal.
type ResearchPaper struct {
	ID          string
	Title       string
	Abstract    string
	AuthorID    string
	PublishDate time.Time
	Category    string
	DownloadURL string
}
