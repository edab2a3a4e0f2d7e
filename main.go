package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boxbook/admin"
	"boxbook/agenda"
	"boxbook/attendance"
	"boxbook/booking"
	"boxbook/db"
	"boxbook/live"
	"boxbook/logger"
	"boxbook/notify"
	"boxbook/ratelim"
	"boxbook/rdx"
	"boxbook/roster"
	"boxbook/routes"
	"boxbook/stats"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// requestLogging logs each request method, path, remote address, and duration.
func requestLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.RequestURI),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(log *zap.Logger) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	rateLimiter := ratelim.NewRateLimiter()

	holidays := agenda.NewMongoHolidays()
	overrides := agenda.NewMongoOverrides()
	catalog := agenda.NewCatalog(holidays, overrides)

	rosters := roster.NewMongoStore()
	records := attendance.NewMongoRecords()

	bookingEngine := booking.NewEngine(catalog, rosters, live.BroadcastUpdate, log)
	attendanceEngine := attendance.NewEngine(rosters, records, stats.InvalidateUser, live.BroadcastUpdate, log)
	calculator := stats.NewCalculator(catalog, records)
	reminders := notify.NewReminderLimiter(rdx.Conn, notify.DefaultDailyLimit)

	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddBookingRoutes(router, booking.NewHandler(bookingEngine, catalog, rosters), rateLimiter)
	routes.AddAttendanceRoutes(router, attendance.NewHandler(attendanceEngine))
	routes.AddStatsRoutes(router, stats.NewHandler(calculator, rdx.Conn))
	routes.AddAdminRoutes(router, admin.NewHandler(overrides, holidays))
	routes.AddNotifyRoutes(router, notify.NewHandler(reminders), rateLimiter)
	routes.AddLiveRoutes(router)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found; using system environment")
	}

	log, err := logger.New(&logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		Output: os.Getenv("LOG_OUTPUT"),
	}, logger.DefaultServiceName)
	if err != nil {
		fmt.Printf("failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer bootCancel()
	if err := db.EnsureIndexes(bootCtx); err != nil {
		log.Fatal("failed to ensure indexes", zap.Error(err))
	}
	if err := agenda.NewMongoHolidays().Seed(bootCtx); err != nil {
		log.Fatal("failed to seed holidays", zap.Error(err))
	}

	router := setupRouter(log)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := requestLogging(log, securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}

	if err := db.Client.Disconnect(ctx); err != nil {
		log.Warn("mongo disconnect", zap.Error(err))
	}

	log.Info("server stopped cleanly")
}
