package catalog

import (
	"testing"

	"github.com/foti-africa/foti-web/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SeedLookups(t *testing.T) {
	t.Parallel()
	c := Default()

	for _, s := range seedStudents {
		got, ok := c.Student(s.ID)
		require.True(t, ok, s.ID)
		assert.Equal(t, s, got)
	}
	for _, tour := range seedTours {
		got, ok := c.Tour(tour.ID)
		require.True(t, ok, tour.ID)
		assert.Equal(t, tour, got)
	}
	for _, p := range seedPapers {
		got, ok := c.Paper(p.ID)
		require.True(t, ok, p.ID)
		assert.Equal(t, p, got)
	}
}

func TestDefault_UnknownIDs(t *testing.T) {
	t.Parallel()
	c := Default()

	for _, id := range []string{"", "x", "s9", "t4", "r0", "T1"} {
		_, ok := c.Student(id)
		assert.False(t, ok, "student %q", id)
		_, ok = c.Tour(id)
		assert.False(t, ok, "tour %q", id)
		_, ok = c.Paper(id)
		assert.False(t, ok, "paper %q", id)
	}
}

func TestLookupTour(t *testing.T) {
	t.Parallel()
	c := Default()

	tour, err := c.LookupTour("t2")
	require.NoError(t, err)
	assert.Equal(t, "Zanzibar Spice Route & Culinary History", tour.Title)

	_, err = c.LookupTour("t99")
	assert.True(t, errors.IsNotFound(err))
}

func TestCounts(t *testing.T) {
	t.Parallel()
	students, tours, papers := Default().Counts()
	assert.Equal(t, 3, students)
	assert.Equal(t, 3, tours)
	assert.Equal(t, 3, papers)
}

func TestFeaturedTours(t *testing.T) {
	t.Parallel()
	c := Default()

	featured := c.FeaturedTours(3)
	require.Len(t, featured, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{featured[0].ID, featured[1].ID, featured[2].ID})

	assert.Len(t, c.FeaturedTours(10), 3)
	assert.Empty(t, c.FeaturedTours(0))
	assert.Empty(t, c.FeaturedTours(-1))
}

func TestCuratorAndAuthor(t *testing.T) {
	t.Parallel()
	c := Default()

	tour, _ := c.Tour("t3")
	curator := c.TourCurator(tour)
	require.NotNil(t, curator)
	assert.Equal(t, "Amara Okafor", curator.Name)

	paper, _ := c.Paper("r3")
	author := c.PaperAuthor(paper)
	require.NotNil(t, author)
	assert.Equal(t, "Sarah Mensah", author.Name)
}

func TestDanglingReferences(t *testing.T) {
	t.Parallel()
	c := New(nil, []Tour{{ID: "t1", StudentID: "ghost"}}, []ResearchPaper{{ID: "r1", AuthorID: "ghost"}})

	tour, ok := c.Tour("t1")
	require.True(t, ok)
	assert.Nil(t, c.TourCurator(tour))

	paper, ok := c.Paper("r1")
	require.True(t, ok)
	assert.Nil(t, c.PaperAuthor(paper))
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()
	c := Default()

	tours := c.Tours()
	tours[0].Title = "changed"
	tours[0].Tags[0] = "changed"

	fresh, _ := c.Tour("t1")
	assert.Equal(t, "Serengeti Migration & Conservation Data Trek", fresh.Title)
	assert.Equal(t, "Wildlife", fresh.Tags[0])

	fresh.Tags[1] = "changed"
	again, _ := c.Tour("t1")
	assert.Equal(t, "Research", again.Tags[1])

	students := c.Students()
	students[0].Name = "changed"
	s, _ := c.Student("s1")
	assert.Equal(t, "Amara Okafor", s.Name)
}

func TestTourHelpers(t *testing.T) {
	t.Parallel()

	tour := Tour{Tags: []string{"a", "b", "c"}, DocumentaryURL: "#", PaperTitle: "P"}
	assert.Equal(t, []string{"a", "b"}, tour.PrimaryTags())
	assert.True(t, tour.HasDocumentary())
	assert.True(t, tour.HasPaper())

	bare := Tour{Tags: []string{"only"}}
	assert.Equal(t, []string{"only"}, bare.PrimaryTags())
	assert.False(t, bare.HasDocumentary())
	assert.False(t, bare.HasPaper())
}
