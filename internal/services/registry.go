package services

// ServiceContainer bundles every service for wiring in app.
type ServiceContainer struct {
	AuthService    AuthService
	GigService     GigService
	ProfileService ProfileService
}
