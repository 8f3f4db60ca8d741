package catalog

import "time"

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic("catalog: bad seed date " + s)
	}
	return t
}

var seedStudents = []Student{
	{
		ID:        "s1",
		Name:      "Amara Okafor",
		Avatar:    "https://picsum.photos/id/1011/200/200",
		Role:      RolePostgraduate,
		Specialty: "Eco-Tourism & Conservation",
		Bio:       "Focusing on sustainable interactions between wildlife reserves and local communities.",
	},
	{
		ID:        "s2",
		Name:      "David Kimani",
		Avatar:    "https://picsum.photos/id/1005/200/200",
		Role:      RoleUndergraduate,
		Specialty: "Urban Heritage",
		Bio:       "Mapping historical trade routes in modern coastal cities.",
	},
	{
		ID:        "s3",
		Name:      "Sarah Mensah",
		Avatar:    "https://picsum.photos/id/1027/200/200",
		Role:      RoleResearcher,
		Specialty: "Policy Analysis",
		Bio:       "Analyzing the impact of visa policies on intra-African tourism flows.",
	},
}

var seedTours = []Tour{
	{
		ID:             "t1",
		Title:          "Serengeti Migration & Conservation Data Trek",
		Description:    "A 5-day immersive safari where tourists assist in data collection for wildebeest migration patterns. Includes lectures by field researchers.",
		Price:          1200,
		Duration:       "5 Days",
		Location:       "Tanzania",
		Image:          "https://picsum.photos/id/1074/800/600",
		StudentID:      "s1",
		Tags:           []string{"Wildlife", "Research", "Adventure"},
		DocumentaryURL: "#",
		PaperTitle:     "Migration Patterns and Tourist Impact 2024",
		Rating:         4.8,
	},
	{
		ID:             "t2",
		Title:          "Zanzibar Spice Route & Culinary History",
		Description:    "Explore the ancient spice farms and Stone Town archives. Learn about the fusion of cultures through food.",
		Price:          850,
		Duration:       "3 Days",
		Location:       "Zanzibar",
		Image:          "https://picsum.photos/id/106/800/600",
		StudentID:      "s2",
		Tags:           []string{"Culture", "History", "Culinary"},
		DocumentaryURL: "#",
		PaperTitle:     "Culinary Heritage as a Driver for Urban Preservation",
		Rating:         4.6,
	},
	{
		ID:             "t3",
		Title:          "Rwanda Eco-Lodge Innovation Tour",
		Description:    "Visit award-winning eco-lodges to understand sustainable architecture and community revenue sharing models.",
		Price:          1500,
		Duration:       "6 Days",
		Location:       "Rwanda",
		Image:          "https://picsum.photos/id/1018/800/600",
		StudentID:      "s1",
		Tags:           []string{"Sustainability", "Architecture", "Education"},
		DocumentaryURL: "#",
		PaperTitle:     "Community Revenue Sharing in Volcanoes National Park",
		Rating:         4.9,
	},
}

var seedPapers = []ResearchPaper{
	{
		ID:          "r1",
		Title:       "Sustainable Interactions: Wildlife & Communities",
		Abstract:    "An analysis of how community-led tourism initiatives reduce poaching incidents in the Serengeti ecosystem.",
		AuthorID:    "s1",
		PublishDate: date("2023-11-15"),
		Category:    "Conservation",
		DownloadURL: "#",
	},
	{
		ID:          "r2",
		Title:       "The Stone Town Effect: Preservation vs. Modernization",
		Abstract:    "Evaluating the economic impact of UNESCO heritage status on local businesses in Zanzibar.",
		AuthorID:    "s2",
		PublishDate: date("2024-02-10"),
		Category:    "Urban Planning",
		DownloadURL: "#",
	},
	{
		ID:          "r3",
		Title:       "Visa Openness Report 2024",
		Abstract:    "A policy brief for the African Union on the correlation between visa-on-arrival policies and tourism GDP growth.",
		AuthorID:    "s3",
		PublishDate: date("2024-05-22"),
		Category:    "Policy",
		DownloadURL: "#",
	},
}
