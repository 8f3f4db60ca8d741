// Package web serves the FoTI site: server-rendered views, the feedback
// form, and the chat assistant widget with its JSON API.
package web

// View identifies one of the site's top-level sections.
type View string

const (
	ViewHome     View = "home"
	ViewTours    View = "tours"
	ViewResearch View = "research"
	ViewCareers  View = "careers"
	ViewStudents View = "students"
	ViewFeedback View = "feedback"
)

// NavItem is an entry in the top navigation bar.
type NavItem struct {
	Label string
	Path  string
	View  View
}

// Nav is the top navigation in display order. Feedback is reached from the footer.
var Nav = []NavItem{
	{Label: "Home", Path: "/", View: ViewHome},
	{Label: "Tours", Path: "/tours", View: ViewTours},
	{Label: "Journal", Path: "/journal", View: ViewResearch},
	{Label: "Students", Path: "/students", View: ViewStudents},
	{Label: "Career Path", Path: "/careers", View: ViewCareers},
}

// ModelPillar is one column of "The FoTI Model" on the home page.
type ModelPillar struct {
	Icon        string
	Title       string
	Description string
}

var modelPillars = []ModelPillar{
	{Icon: "briefcase", Title: "Business Operations", Description: "Students manage live tourism products under supervision, generating revenue to fund their studies."},
	{Icon: "trending-up", Title: "Research & Development", Description: "Real-world data leads to documentary evidence and peer-reviewed publications in the FoTI Journal."},
	{Icon: "award", Title: "Career Acceleration", Description: "Graduates transition to our 'Travel Agency for Hire' platform or join the FoTI Think Tank."},
}

// CareerStep is one stage of the career roadmap.
type CareerStep struct {
	Number      int
	Title       string
	Description string
}

var careerSteps = []CareerStep{
	{1, "Undergraduate/Postgraduate Student", "Students enter the program. Instead of waiting for holidays, they launch pilot tourism products. Revenue funds their thesis research."},
	{2, "Business Incubation", "Successful products are scaled. Students gain \"Certified Travel Agent\" status within FoTI's internal agency. Documentaries are published on YouTube."},
	{3, "Travel Agency for Hire", "Graduates are listed on our \"Travel Agency for Hire\" platform. They can be hired by external tour operators or continue running their FoTI-incubated business as alumni."},
	{4, "FoTI Think Tank", "The most talented postgraduates join the Think Tank as policy analysts, shaping the future of African tourism through high-level research and government advisory."},
}
