package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	books := api.Group("/books")
	books.GET("", s.listBooks)
	books.GET("/recent", s.listRecentBooks)
	books.GET("/recently-viewed", s.listRecentlyViewedBooks)
	books.GET("/:id", s.getBook)

	categories := api.Group("/categories")
	categories.GET("", s.listCategories)
	categories.GET("/:id/books", s.listBooksByCategory)

	mantras := api.Group("/mantras")
	mantras.GET("", s.listMantras)
	mantras.GET("/recent", s.listRecentMantras)
	mantras.GET("/:id", s.getMantra)

	api.GET("/products", s.listProducts)

	api.POST("/contact", s.submitContact)
	api.POST("/reports", s.submitReport)

	jap := api.Group("/jap")
	jap.GET("/session", s.getJapSession)
	jap.POST("/session", s.startJapSession)
	jap.PUT("/session", s.incrementJapSession)
	jap.DELETE("/session", s.resetJapSession)

	api.GET("/security/events", s.listSecurityEvents)
}
