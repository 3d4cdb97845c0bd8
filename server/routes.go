package server

func (s *Server) initRoutes() {
	base := s.HTMLMiddleware()
	gated := s.HTMLMiddleware(s.RequireSession())

	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), base...))

	// OAuth flow
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), base...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), base...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), base...))

	// Authenticated surface
	s.RegisterRouteHandler("GET "+RouteRefresh, ChainMiddleware(s.RefreshHandler(), gated...))
	s.RegisterRouteHandler("GET "+RouteToken, ChainMiddleware(s.TokenHandler(), gated...))
	s.RegisterRouteHandler("GET "+RouteApprovals, ChainMiddleware(s.ApprovalsHandler(), gated...))
}
