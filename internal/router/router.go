package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yogeshkhant77/Booksy/internal/handler"
	"github.com/yogeshkhant77/Booksy/internal/middleware"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/platform/metrics"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Book      *handler.BookHandler
	Library   *handler.LibraryHandler
	Shelf     *handler.ShelfHandler
	Admin     *handler.AdminHandler
	Discovery *handler.DiscoveryHandler
}

// New assembles the full route tree with the shared middleware stack.
func New(h Handlers, auth *service.AuthService, m *metrics.Manager, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Tracing("booksy"))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	authenticate := middleware.Authenticator(auth, log)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/verify-otp", h.Auth.VerifyOTP)
		r.Post("/reset-password", h.Auth.ResetPassword)
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.Book.List)
		r.Get("/{bookId}", h.Book.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.AdminOnly)
			r.Post("/", h.Book.Create)
			r.Put("/{bookId}", h.Book.Update)
			r.Delete("/{bookId}", h.Book.Delete)
		})
	})

	r.Route("/api/google-books", func(r chi.Router) {
		r.Get("/", h.Discovery.Browse)
		r.Get("/search", h.Discovery.Search)
		r.Get("/details/{volumeId}", h.Discovery.GetVolume)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/like/{bookId}", h.Library.Like)
		r.Delete("/like/{bookId}", h.Library.Unlike)
		r.Get("/liked", h.Library.LikedBooks)
		r.Get("/check-liked/{bookId}", h.Library.CheckLiked)

		r.Get("/cart", h.Library.GetCart)
		r.Delete("/cart", h.Library.ClearCart)
		r.Post("/cart/{bookId}", h.Library.AddToCart)
		r.Put("/cart/{bookId}", h.Library.UpdateCartQuantity)
		r.Delete("/cart/{bookId}", h.Library.RemoveFromCart)
	})

	r.Route("/api/my-books", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.Shelf.List)
		r.Post("/{bookId}", h.Shelf.Add)
		r.Delete("/{bookId}", h.Shelf.Remove)
		r.Get("/check/{bookId}", h.Shelf.Check)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.AdminOnly)
		r.Get("/users", h.Admin.ListUsers)
		r.Get("/users/stats", h.Admin.Stats)
		r.Get("/users/{userId}", h.Admin.GetUser)
	})

	return r
}
