package services

import (
	"strings"

	"gigconnect/internal/models"
)

// FilterGigs is the single filtering function shared by the seeker
// browser and the landing preview. It is pure: input order is
// preserved and the input slice is never mutated.
//
// A gig matches when the term is empty or a case-insensitive substring
// of its title or description, and the category is "all" (or empty) or
// equal to the gig's category.
func FilterGigs(gigs []models.Gig, term string, category models.GigCategory) []models.Gig {
	needle := strings.ToLower(strings.TrimSpace(term))
	matchAll := category == "" || category == models.GigCategoryAll

	filtered := make([]models.Gig, 0, len(gigs))
	for _, gig := range gigs {
		if needle != "" &&
			!strings.Contains(strings.ToLower(gig.Title), needle) &&
			!strings.Contains(strings.ToLower(gig.Description), needle) {
			continue
		}
		if !matchAll && gig.Category != category {
			continue
		}
		filtered = append(filtered, gig)
	}
	return filtered
}
