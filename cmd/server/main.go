package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinderpost/internal/config"
	"kinderpost/internal/database"
	"kinderpost/internal/handlers"
	"kinderpost/internal/repository"
	"kinderpost/internal/security"
	"kinderpost/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	kindergartenRepo := repository.NewKindergartenRepository(db)
	childRepo := repository.NewChildRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokens, emailService)
	actorService := service.NewActorService(kindergartenRepo, childRepo)
	hierarchyService := service.NewHierarchyService(kindergartenRepo, childRepo, userRepo)
	dailyService := service.NewDailyService(attendanceRepo, recordRepo, childRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, childRepo, nil)
	activityService := service.NewActivityService(activityRepo, kindergartenRepo, childRepo)
	postService := service.NewPostService(postRepo, kindergartenRepo, childRepo, notificationService)
	statsService := service.NewStatsService(statsRepo, kindergartenRepo, childRepo, userRepo)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
				RedirectURL:  cfg.OAuthRedirectBaseURL + "/api/auth/google/callback",
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
				RedirectURL:  cfg.OAuthRedirectBaseURL + "/api/auth/facebook/callback",
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, actorService, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(authService, oauthProviders)
	kindergartenHandler := handlers.NewKindergartenHandler(hierarchyService)
	childHandler := handlers.NewChildHandler(hierarchyService)
	dailyHandler := handlers.NewDailyHandler(dailyService)
	activityHandler := handlers.NewActivityHandler(activityService)
	postHandler := handlers.NewPostHandler(postService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/pin-login", middleware.RateLimit(authHandler.LoginWithPin))
	mux.HandleFunc("GET /api/auth/{provider}/start", oauthHandler.StartOAuth)
	mux.HandleFunc("GET /api/auth/{provider}/callback", oauthHandler.OAuthCallback)

	// Account routes
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/auth/me", middleware.RequireAuth(authHandler.UpdateProfile))
	mux.HandleFunc("DELETE /api/auth/me", middleware.RequireAuth(authHandler.DeleteAccount))
	mux.HandleFunc("POST /api/auth/pin", middleware.RequireAuth(authHandler.SetPin))
	mux.HandleFunc("PUT /api/auth/password", middleware.RequireAuth(authHandler.ChangePassword))
	mux.HandleFunc("PUT /api/auth/device-token", middleware.RequireAuth(authHandler.UpdateDeviceToken))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.RequireSuperadmin(authHandler.DeleteUser))

	// Hierarchy routes
	mux.HandleFunc("POST /api/kindergartens", middleware.RequireAuth(kindergartenHandler.CreateKindergarten))
	mux.HandleFunc("GET /api/kindergartens", middleware.RequireAuth(kindergartenHandler.ListKindergartens))
	mux.HandleFunc("GET /api/kindergartens/{id}", middleware.RequireAuth(kindergartenHandler.GetKindergarten))
	mux.HandleFunc("DELETE /api/kindergartens/{id}", middleware.RequireAuth(kindergartenHandler.DeleteKindergarten))
	mux.HandleFunc("POST /api/kindergartens/{id}/admin", middleware.RequireAuth(kindergartenHandler.AttachAdmin))
	mux.HandleFunc("DELETE /api/kindergartens/{id}/admin", middleware.RequireAuth(kindergartenHandler.DetachAdmin))
	mux.HandleFunc("POST /api/classes", middleware.RequireAuth(kindergartenHandler.CreateClass))
	mux.HandleFunc("GET /api/classes", middleware.RequireAuth(kindergartenHandler.ListClasses))
	mux.HandleFunc("GET /api/classes/{id}", middleware.RequireAuth(kindergartenHandler.GetClass))
	mux.HandleFunc("GET /api/classes/{id}/children", middleware.RequireAuth(kindergartenHandler.ListClassChildren))
	mux.HandleFunc("DELETE /api/classes/{id}", middleware.RequireAuth(kindergartenHandler.DeleteClass))
	mux.HandleFunc("POST /api/teachers", middleware.RequireAuth(kindergartenHandler.AttachTeacher))
	mux.HandleFunc("GET /api/teachers", middleware.RequireAuth(kindergartenHandler.ListTeachers))
	mux.HandleFunc("DELETE /api/teachers/{userID}", middleware.RequireAuth(kindergartenHandler.DetachTeacher))
	mux.HandleFunc("POST /api/assignments", middleware.RequireAuth(kindergartenHandler.AssignTeacher))
	mux.HandleFunc("DELETE /api/assignments/{id}", middleware.RequireAuth(kindergartenHandler.UnassignTeacher))

	// Child routes
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.CreateChild))
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.ListChildren))
	mux.HandleFunc("GET /api/children/{id}", middleware.RequireAuth(childHandler.GetChild))
	mux.HandleFunc("PUT /api/children/{id}", middleware.RequireAuth(childHandler.UpdateChild))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childHandler.DeleteChild))
	mux.HandleFunc("GET /api/children/{id}/activities", middleware.RequireAuth(activityHandler.ListChildActivities))

	// Daily record routes
	mux.HandleFunc("POST /api/attendance/check-in", middleware.RequireAuth(dailyHandler.CheckIn))
	mux.HandleFunc("POST /api/attendance/check-out", middleware.RequireAuth(dailyHandler.CheckOut))
	mux.HandleFunc("GET /api/attendance", middleware.RequireAuth(dailyHandler.ListAttendance))
	mux.HandleFunc("POST /api/meals", middleware.RequireAuth(dailyHandler.CreateMeal))
	mux.HandleFunc("GET /api/meals", middleware.RequireAuth(dailyHandler.ListMeals))
	mux.HandleFunc("POST /api/naps", middleware.RequireAuth(dailyHandler.CreateNap))
	mux.HandleFunc("GET /api/naps", middleware.RequireAuth(dailyHandler.ListNaps))
	mux.HandleFunc("POST /api/hygiene", middleware.RequireAuth(dailyHandler.CreateHygiene))
	mux.HandleFunc("GET /api/hygiene", middleware.RequireAuth(dailyHandler.ListHygiene))
	mux.HandleFunc("POST /api/moods", middleware.RequireAuth(dailyHandler.CreateMood))
	mux.HandleFunc("GET /api/moods", middleware.RequireAuth(dailyHandler.ListMoods))

	// Activity routes
	mux.HandleFunc("POST /api/activities", middleware.RequireAuth(activityHandler.CreateActivity))
	mux.HandleFunc("GET /api/activities", middleware.RequireAuth(activityHandler.ListActivities))
	mux.HandleFunc("GET /api/activities/{id}", middleware.RequireAuth(activityHandler.GetActivity))
	mux.HandleFunc("PUT /api/activities/{id}", middleware.RequireAuth(activityHandler.UpdateActivity))
	mux.HandleFunc("DELETE /api/activities/{id}", middleware.RequireAuth(activityHandler.DeleteActivity))

	// Feed routes
	mux.HandleFunc("POST /api/posts", middleware.RequireAuth(postHandler.CreatePost))
	mux.HandleFunc("GET /api/posts", middleware.RequireAuth(postHandler.ListPosts))
	mux.HandleFunc("GET /api/posts/{id}", middleware.RequireAuth(postHandler.GetPost))
	mux.HandleFunc("PUT /api/posts/{id}", middleware.RequireAuth(postHandler.UpdatePost))
	mux.HandleFunc("DELETE /api/posts/{id}", middleware.RequireAuth(postHandler.DeletePost))
	mux.HandleFunc("POST /api/posts/{id}/like", middleware.RequireAuth(postHandler.LikePost))
	mux.HandleFunc("DELETE /api/posts/{id}/like", middleware.RequireAuth(postHandler.UnlikePost))
	mux.HandleFunc("POST /api/posts/{id}/comments", middleware.RequireAuth(postHandler.CreateComment))
	mux.HandleFunc("GET /api/posts/{id}/comments", middleware.RequireAuth(postHandler.ListComments))
	mux.HandleFunc("DELETE /api/comments/{id}", middleware.RequireAuth(postHandler.DeleteComment))
	mux.HandleFunc("POST /api/comments/{id}/like", middleware.RequireAuth(postHandler.LikeComment))
	mux.HandleFunc("DELETE /api/comments/{id}/like", middleware.RequireAuth(postHandler.UnlikeComment))

	// Notification routes
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(notificationHandler.ListNotifications))
	mux.HandleFunc("GET /api/notifications/unread-count", middleware.RequireAuth(notificationHandler.UnreadCount))
	mux.HandleFunc("PUT /api/notifications/read-all", middleware.RequireAuth(notificationHandler.MarkAllRead))
	mux.HandleFunc("PUT /api/notifications/{id}/read", middleware.RequireAuth(notificationHandler.MarkRead))
	mux.HandleFunc("DELETE /api/notifications/{id}", middleware.RequireAuth(notificationHandler.DeleteNotification))
	mux.HandleFunc("POST /api/notifications/broadcast", middleware.RequireSuperadmin(notificationHandler.Broadcast))

	// Statistics routes
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(statsHandler.Aggregate))
	mux.HandleFunc("GET /api/stats/totals", middleware.RequireAuth(statsHandler.DashboardTotals))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
