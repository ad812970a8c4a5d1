package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger, cors)

	// Public endpoints
	r.Post("/api/auth/signup", s.handleSignup)
	r.Post("/api/auth/login", s.handleLogin)

	// Protected endpoints
	r.Group(func(auth chi.Router) {
		auth.Use(s.authenticate)
		auth.Get("/api/sauces", s.handleListSauces)
		auth.Post("/api/sauces", s.handleCreateSauce)
		auth.Get("/api/sauces/{id}", s.handleGetSauce)
		auth.Put("/api/sauces/{id}", s.handleUpdateSauce)
		auth.Delete("/api/sauces/{id}", s.handleDeleteSauce)
		auth.Post("/api/sauces/{id}/like", s.handleVote)
	})

	if s.imageDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.imageDir))))
	}

	return r
}
