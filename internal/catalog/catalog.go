package catalog

import (
	"fmt"
	"slices"

	"github.com/foti-africa/foti-web/internal/errors"
)

// Catalog is an immutable set of students, tours and papers.
// It is safe for concurrent use; every accessor returns copies.
type Catalog struct {
	students []Student
	tours    []Tour
	papers   []ResearchPaper
}

// New builds a catalog from the given records.
// References between records are not validated.
func New(students []Student, tours []Tour, papers []ResearchPaper) *Catalog {
	c := &Catalog{
		students: slices.Clone(students),
		tours:    make([]Tour, len(tours)),
		papers:   slices.Clone(papers),
	}
	for i, t := range tours {
		c.tours[i] = cloneTour(t)
	}
	return c
}

// Default returns the catalog seeded with the FoTI content.
func Default() *Catalog {
	return New(seedStudents, seedTours, seedPapers)
}

func cloneTour(t Tour) Tour {
	t.Tags = slices.Clone(t.Tags)
	return t
}

// Students returns all students in seed order.
func (c *Catalog) Students() []Student {
	return slices.Clone(c.students)
}

// Tours returns all tours in seed order.
func (c *Catalog) Tours() []Tour {
	out := make([]Tour, len(c.tours))
	for i, t := range c.tours {
		out[i] = cloneTour(t)
	}
	return out
}

// Papers returns all research papers in seed order.
func (c *Catalog) Papers() []ResearchPaper {
	return slices.Clone(c.papers)
}

// FeaturedTours returns the first n tours.
func (c *Catalog) FeaturedTours(n int) []Tour {
	tours := c.Tours()
	if n < 0 {
		n = 0
	}
	return tours[:min(n, len(tours))]
}

// Student returns the student with id.
func (c *Catalog) Student(id string) (Student, bool) {
	i := slices.IndexFunc(c.students, func(s Student) bool { return s.ID == id })
	if i < 0 {
		return Student{}, false
	}
	return c.students[i], true
}

// Tour returns the tour with id.
func (c *Catalog) Tour(id string) (Tour, bool) {
	i := slices.IndexFunc(c.tours, func(t Tour) bool { return t.ID == id })
	if i < 0 {
		return Tour{}, false
	}
	return cloneTour(c.tours[i]), true
}

// Paper returns the research paper with id.
func (c *Catalog) Paper(id string) (ResearchPaper, bool) {
	i := slices.IndexFunc(c.papers, func(p ResearchPaper) bool { return p.ID == id })
	if i < 0 {
		return ResearchPaper{}, false
	}
	return c.papers[i], true
}

// LookupTour is Tour with an error that wraps errors.ErrNotFound.
func (c *Catalog) LookupTour(id string) (Tour, error) {
	t, ok := c.Tour(id)
	if !ok {
		return Tour{}, fmt.Errorf("tour %q: %w", id, errors.ErrNotFound)
	}
	return t, nil
}

// TourCurator returns the student who curates t, or nil when the
// reference does not resolve.
func (c *Catalog) TourCurator(t Tour) *Student {
	s, ok := c.Student(t.StudentID)
	if !ok {
		return nil
	}
	return &s
}

// PaperAuthor returns the student who wrote p, or nil when the
// reference does not resolve.
func (c *Catalog) PaperAuthor(p ResearchPaper) *Student {
	s, ok := c.Student(p.AuthorID)
	if !ok {
		return nil
	}
	return &s
}

// Counts returns the number of students, tours and papers.
func (c *Catalog) Counts() (students, tours, papers int) {
	return len(c.students), len(c.tours), len(c.papers)
}
