package models

type UserRole string
type GigStatus string
type GigCategory string

const (
	UserRoleSeeker   UserRole = "gig_seeker"
	UserRoleProvider UserRole = "gig_provider"

	GigStatusOpen       GigStatus = "open"
	GigStatusInProgress GigStatus = "in_progress"
	GigStatusCompleted  GigStatus = "completed"
	GigStatusClosed     GigStatus = "closed"

	GigCategoryWebDevelopment    GigCategory = "web_development"
	GigCategoryMobileDevelopment GigCategory = "mobile_development"
	GigCategoryDesign            GigCategory = "design"
	GigCategoryWriting           GigCategory = "writing"
	GigCategoryMarketing         GigCategory = "marketing"
	GigCategoryVideoEditing      GigCategory = "video_editing"
	GigCategoryPhotography       GigCategory = "photography"
	GigCategoryConsulting        GigCategory = "consulting"
	GigCategoryOther             GigCategory = "other"

	// GigCategoryAll is the browse filter wildcard, never stored.
	GigCategoryAll GigCategory = "all"
)

// GigCategories lists every storable category.
var GigCategories = []GigCategory{
	GigCategoryWebDevelopment,
	GigCategoryMobileDevelopment,
	GigCategoryDesign,
	GigCategoryWriting,
	GigCategoryMarketing,
	GigCategoryVideoEditing,
	GigCategoryPhotography,
	GigCategoryConsulting,
	GigCategoryOther,
}

// ValidGigCategory reports whether c can be stored on a gig.
func ValidGigCategory(c GigCategory) bool {
	for _, known := range GigCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidGigStatus reports whether s is a known gig status.
func ValidGigStatus(s GigStatus) bool {
	switch s {
	case GigStatusOpen, GigStatusInProgress, GigStatusCompleted, GigStatusClosed:
		return true
	default:
		return false
	}
}

// ValidUserRole reports whether r is a registerable role.
func ValidUserRole(r UserRole) bool {
	return r == UserRoleSeeker || r == UserRoleProvider
}
