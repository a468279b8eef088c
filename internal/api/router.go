package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{REQUEST_ID_HEADER},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handler.status)
	r.Get("/model-info", handler.modelInfo)
	r.Post("/predict", handler.predict)
	return r
}
