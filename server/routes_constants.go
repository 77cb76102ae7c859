package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// API Routes
	RouteSessionValidate = "/session/validate"

	// Operational Routes
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
