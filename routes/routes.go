package routes

import (
	"boxbook/admin"
	"boxbook/attendance"
	"boxbook/auth"
	"boxbook/booking"
	"boxbook/live"
	"boxbook/middleware"
	"boxbook/models"
	"boxbook/notify"
	"boxbook/ratelim"
	"boxbook/stats"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddBookingRoutes(router *httprouter.Router, h *booking.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/slots", h.GetSlots)
	router.GET("/api/rosters/:date", middleware.Authenticate(h.GetRoster))
	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(h.CreateBooking)))
	router.DELETE("/api/bookings/:date/:slotTime", middleware.Authenticate(h.DeleteBooking))
}

func AddAttendanceRoutes(router *httprouter.Router, h *attendance.Handler) {
	router.POST("/api/attendance", middleware.Authenticate(h.Mark))
	router.GET("/api/attendance/:userId", middleware.Authenticate(h.History))
	router.POST("/api/attendance/:userId/bulk", middleware.Authenticate(h.BulkImport))
}

func AddStatsRoutes(router *httprouter.Router, h *stats.Handler) {
	router.GET("/api/stats/:userId", middleware.Authenticate(h.GetStats))
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler) {
	router.GET("/api/admin/schedule/:date", middleware.Authenticate(middleware.RequireRole(h.GetOverride, models.RoleAdmin)))
	router.PUT("/api/admin/schedule/:date", middleware.Authenticate(middleware.RequireRole(h.PutOverride, models.RoleAdmin)))
	router.GET("/api/admin/holidays", middleware.Authenticate(middleware.RequireRole(h.ListHolidays, models.RoleAdmin)))
	router.POST("/api/admin/holidays", middleware.Authenticate(middleware.RequireRole(h.AddHoliday, models.RoleAdmin)))
	router.DELETE("/api/admin/holidays/:date", middleware.Authenticate(middleware.RequireRole(h.RemoveHoliday, models.RoleAdmin)))
}

func AddNotifyRoutes(router *httprouter.Router, h *notify.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/reminders", rl.Limit(middleware.Authenticate(h.Request)))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/rosters/:date", live.HandleWS)
}
