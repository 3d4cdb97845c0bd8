package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex     = "/"
	RouteLogin     = "/login"
	RouteCallback  = "/getAToken"
	RouteRefresh   = "/refresh"
	RouteToken     = "/token"
	RouteApprovals = "/approvals"
	RouteLogout    = "/logout"
)
