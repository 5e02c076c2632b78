package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth    *AuthHandler
	Gig     *GigHandler
	Profile *ProfileHandler
	File    *FileHandler
}
