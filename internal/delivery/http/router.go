package http

import (
	"net/http"

	"pawcare-booking/internal/delivery/http/handler"
	"pawcare-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	bookingHandler      *handler.BookingHandler
	waitlistHandler     *handler.WaitlistHandler
	availabilityHandler *handler.AvailabilityHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	waitlistHandler *handler.WaitlistHandler,
	availabilityHandler *handler.AvailabilityHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		bookingHandler:      bookingHandler,
		waitlistHandler:     waitlistHandler,
		availabilityHandler: availabilityHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/client", r.authHandler.RegisterClient).Methods(http.MethodPost)
	auth.HandleFunc("/register/sitter", r.authHandler.RegisterSitter).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Booking changes (clients on their own bookings, admins on any)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Use(middleware.RequireAdminOrClient)
	bookings.HandleFunc("", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/cancellation/evaluate", r.bookingHandler.EvaluateCancellation).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/reschedule/evaluate", r.bookingHandler.EvaluateReschedule).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/reschedule", r.bookingHandler.RescheduleBooking).Methods(http.MethodPost)

	// Waitlist (clients)
	waitlist := api.PathPrefix("/waitlist").Subrouter()
	waitlist.Use(r.authMiddleware.Authenticate)
	waitlist.Use(middleware.RequireAdminOrClient)
	waitlist.HandleFunc("", r.waitlistHandler.JoinWaitlist).Methods(http.MethodPost)
	waitlist.HandleFunc("", r.waitlistHandler.GetMyEntries).Methods(http.MethodGet)
	waitlist.HandleFunc("/{id}", r.waitlistHandler.RemoveFromWaitlist).Methods(http.MethodDelete)

	// Sitter availability (any authenticated user)
	sitters := api.PathPrefix("/sitters").Subrouter()
	sitters.Use(r.authMiddleware.Authenticate)
	sitters.HandleFunc("/{sitterId}/availability", r.availabilityHandler.CheckSlot).Methods(http.MethodGet)
	sitters.HandleFunc("/{sitterId}/slots", r.availabilityHandler.GetDaySlots).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/waitlist", r.waitlistHandler.GetRankedWaitlist).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLogByID).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{resourceType}/{resourceId}", r.auditLogHandler.GetResourceHistory).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
