package services

import (
	"testing"

	"gigconnect/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleGigs() []models.Gig {
	return []models.Gig{
		{Title: "React dashboard", Description: "SPA with charts", Category: models.GigCategoryWebDevelopment},
		{Title: "Wedding photos", Description: "Full day shoot", Category: models.GigCategoryPhotography},
		{Title: "Blog posts", Description: "Write about React hooks", Category: models.GigCategoryWriting},
	}
}

func TestFilterGigs_NoFilters(t *testing.T) {
	gigs := sampleGigs()
	got := FilterGigs(gigs, "", "")
	assert.Len(t, got, 3)
	assert.Equal(t, gigs, got, "order is preserved")
}

func TestFilterGigs_AllCategoryBehavesLikeEmpty(t *testing.T) {
	gigs := sampleGigs()
	assert.Equal(t, FilterGigs(gigs, "", ""), FilterGigs(gigs, "", models.GigCategoryAll))
}

func TestFilterGigs_TermMatchesTitleAndDescription(t *testing.T) {
	gigs := sampleGigs()

	// Case-insensitive, matches title or description.
	got := FilterGigs(gigs, "REACT", "")
	assert.Len(t, got, 2)
	assert.Equal(t, "React dashboard", got[0].Title)
	assert.Equal(t, "Blog posts", got[1].Title)

	// Surrounding whitespace is ignored.
	got = FilterGigs(gigs, "  wedding  ", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "Wedding photos", got[0].Title)
}

func TestFilterGigs_CategoryFilter(t *testing.T) {
	gigs := sampleGigs()

	got := FilterGigs(gigs, "", models.GigCategoryPhotography)
	assert.Len(t, got, 1)
	assert.Equal(t, "Wedding photos", got[0].Title)
}

func TestFilterGigs_TermAndCategoryCombine(t *testing.T) {
	gigs := sampleGigs()

	got := FilterGigs(gigs, "react", models.GigCategoryWriting)
	assert.Len(t, got, 1)
	assert.Equal(t, "Blog posts", got[0].Title)

	got = FilterGigs(gigs, "react", models.GigCategoryPhotography)
	assert.Empty(t, got)
}

func TestFilterGigs_NeverMutatesInput(t *testing.T) {
	gigs := sampleGigs()
	original := sampleGigs()

	_ = FilterGigs(gigs, "react", models.GigCategoryWriting)
	assert.Equal(t, original, gigs)
}

func TestFilterGigs_EmptyInput(t *testing.T) {
	got := FilterGigs(nil, "anything", models.GigCategoryDesign)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
