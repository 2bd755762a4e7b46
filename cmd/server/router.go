package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/review-api/internal/api"
	apiMiddleware "github.com/phrazzld/review-api/internal/api/middleware"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/rs/cors"
)

// routerDeps are the collaborators the HTTP routes need.
type routerDeps struct {
	auth        api.AuthService
	verifier    apiMiddleware.IdentityVerifier
	items       store.ItemStore
	reviews     store.ReviewStore
	comments    store.CommentStore
	corsOrigins []string
	logger      *slog.Logger
}

// newRouter builds the chi router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(deps.logger))
	r.Use(newCORS(deps.corsOrigins).Handler)

	authHandler := api.NewAuthHandler(deps.auth, deps.logger)
	itemHandler := api.NewItemHandler(deps.items, deps.logger)
	reviewHandler := api.NewReviewHandler(deps.reviews, deps.logger)
	commentHandler := api.NewCommentHandler(deps.comments, deps.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.verifier, deps.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Get("/items", itemHandler.ListItems)
		r.Get("/items/{id}", itemHandler.GetItem)
		r.Get("/items/{id}/reviews", reviewHandler.ListItemReviews)
		r.Get("/items/{id}/reviews/{reviewId}/comments", commentHandler.ListReviewComments)
		r.Get("/reviews/{id}", reviewHandler.GetReview)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Post("/items", itemHandler.CreateItem)
			r.Post("/items/{id}/reviews", reviewHandler.CreateReview)
			r.Post("/items/{id}/reviews/{reviewId}/comments", commentHandler.CreateComment)

			r.Get("/reviews/me", reviewHandler.ListMyReviews)
			r.Put("/reviews/{id}", reviewHandler.UpdateReview)
			r.Delete("/reviews/{id}", reviewHandler.DeleteReview)

			r.Get("/comments/me", commentHandler.ListMyComments)
			r.Put("/comments/{id}", commentHandler.UpdateComment)
			r.Delete("/comments/{id}", commentHandler.DeleteComment)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", apiMiddleware.TraceIDHeader},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         300,
	})
}
