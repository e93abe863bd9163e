package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/config"
	appHTTP "github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/cron"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/database"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/geocode"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/jwt"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/repository/postgresql"
	accountService "github.com/TimeSaving-dev/pointeuse-backend-go/internal/service/account"
	activityService "github.com/TimeSaving-dev/pointeuse-backend-go/internal/service/activity"
	authService "github.com/TimeSaving-dev/pointeuse-backend-go/internal/service/auth"
	notificationService "github.com/TimeSaving-dev/pointeuse-backend-go/internal/service/notification"
	trackingService "github.com/TimeSaving-dev/pointeuse-backend-go/internal/service/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	geocodeResolver := geocode.NewNominatimResolver(cfg.Geocode)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	trackingSvc := trackingService.NewTrackingService(eventRepo, userRepo, geocodeResolver)
	activitySvc := activityService.NewActivityService(eventRepo, userRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	accountSvc := accountService.NewAccountService(db, userRepo, notificationRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	trackingHandler := appHTTP.NewTrackingHandler(trackingSvc)
	activityHandler := appHTTP.NewActivityHandler(activitySvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	accountHandler := appHTTP.NewAccountHandler(accountSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		trackingHandler,
		activityHandler,
		notificationHandler,
		accountHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(eventRepo, notificationSvc).RegisterJobs(scheduler)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
