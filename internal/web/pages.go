package web

import (
	"html/template"
	"time"

	"github.com/foti-africa/foti-web/internal/catalog"
	"github.com/foti-africa/foti-web/internal/chat"
	"github.com/foti-africa/foti-web/internal/feedback"
	"github.com/foti-africa/foti-web/internal/genai"
)

// Page is the data every template receives.
type Page struct {
	View  View
	Title string
	Nav   []NavItem
	Path  string // request path, used as the chat form's return target
	Year  int
	Chat  ChatWidget
	Data  any
}

// ChatWidget is the state of the floating assistant.
type ChatWidget struct {
	Open      bool
	Enabled   bool
	Loading   bool
	Notice    string
	MaxLength int
	Messages  []ChatMessageView
}

// ChatMessageView is a transcript entry prepared for display and JSON.
type ChatMessageView struct {
	Role    genai.Role    `json:"role"`
	Text    string        `json:"text"`
	HTML    template.HTML `json:"html"`
	IsError bool          `json:"isError"`
}

func messageView(m chat.Message) ChatMessageView {
	v := ChatMessageView{Role: m.Role, Text: m.Text, IsError: m.IsError}
	if m.Role == genai.RoleModel && !m.IsError {
		v.HTML = renderMarkdown(m.Text)
	} else {
		v.HTML = template.HTML("<p>" + template.HTMLEscapeString(m.Text) + "</p>") //nolint:gosec // escaped
	}
	return v
}

func messageViews(msgs []chat.Message) []ChatMessageView {
	out := make([]ChatMessageView, len(msgs))
	for i, m := range msgs {
		out[i] = messageView(m)
	}
	return out
}

// TourCard pairs a tour with its curator, nil when unresolved.
type TourCard struct {
	Tour    catalog.Tour
	Curator *catalog.Student
}

// PaperEntry pairs a paper with its author, nil when unresolved.
type PaperEntry struct {
	Paper  catalog.ResearchPaper
	Author *catalog.Student
}

type homeData struct {
	Pillars  []ModelPillar
	Featured []TourCard
}

type toursData struct {
	Cards []TourCard
}

type tourData struct {
	Card TourCard
}

type tourNotFoundData struct {
	ID string
}

type journalData struct {
	Entries []PaperEntry
}

type studentsData struct {
	Students []catalog.Student
}

type careersData struct {
	Steps []CareerStep
}

type feedbackData struct {
	Form   feedback.Form
	Types  []feedback.Type
	Errors map[string]string
}

func currentYear() int { return time.Now().Year() }
