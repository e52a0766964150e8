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

	"academy-backend/internal/admin"
	"academy-backend/internal/articles"
	"academy-backend/internal/auth"
	"academy-backend/internal/bookings"
	"academy-backend/internal/cache"
	"academy-backend/internal/captcha"
	"academy-backend/internal/config"
	"academy-backend/internal/courses"
	"academy-backend/internal/db"
	"academy-backend/internal/instructors"
	"academy-backend/internal/links"
	"academy-backend/internal/media"
	"academy-backend/internal/middleware"
	"academy-backend/internal/partners"
	"academy-backend/internal/sitemedia"
	"academy-backend/internal/uploads"
	"academy-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "academy-backend",
		}
	}

	var uploader media.Uploader
	var destroyer media.Destroyer
	if mediaClient := media.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret); mediaClient != nil {
		uploader, destroyer = mediaClient, mediaClient
		logger.Info("media host enabled", slog.String("cloud", cfg.CloudinaryCloudName))
	} else {
		logger.Info("media host disabled")
	}

	verifier := captcha.NewVerifier(cfg.RecaptchaSecret, cfg.RecaptchaThreshold)
	if verifier == nil {
		logger.Info("captcha verifier disabled")
	}

	val := validation.New()

	articlesService := articles.NewService(articles.NewRepository(cols.Articles), destroyer, logger)
	articlesHandler := articles.NewHandler(articlesService, val, logger, cacheStore, cacheTTL)

	instructorsService := instructors.NewService(instructors.NewRepository(cols.Instructors), destroyer, logger)
	instructorsHandler := instructors.NewHandler(instructorsService, val, logger)

	coursesService := courses.NewService(courses.NewRepository(cols.Courses), instructorsService, destroyer, logger)
	coursesHandler := courses.NewHandler(coursesService, val, logger, cacheStore, cacheTTL)

	accreditationsService := partners.NewService(partners.NewRepository(cols.Accreditations), destroyer, logger)
	accreditationsHandler := partners.NewHandler(accreditationsService, val, logger, cacheStore, cacheTTL, "accreditation")

	leadingCompaniesService := partners.NewService(partners.NewRepository(cols.LeadingCompanies), destroyer, logger)
	leadingCompaniesHandler := partners.NewHandler(leadingCompaniesService, val, logger, cacheStore, cacheTTL, "leading company")

	siteMediaService := sitemedia.NewService(sitemedia.NewHomeRepository(cols.HomeMedia), sitemedia.NewCitiesRepository(cols.CitiesMedia), destroyer, logger)
	siteMediaHandler := sitemedia.NewHandler(siteMediaService, val, logger)

	bookingsService := bookings.NewService(bookings.NewRepository(cols.Bookings))
	bookingsHandler := bookings.NewHandler(bookingsService, verifier, val, logger)

	linksService := links.NewService(links.NewRepository(cols.GeneralLinks))
	linksHandler := links.NewHandler(linksService, val, logger, cacheStore, cacheTTL)

	adminService := admin.NewService(admin.NewRepository(cols.Users))
	adminHandler := admin.NewHandler(adminService, jwtManager, cfg.AdminAPIKey, cfg.CookieSecure, val, logger)

	uploadsHandler := uploads.NewHandler(uploader, destroyer, cfg.MediaFolderPrefix, cfg.MaxUploadSizeMB, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	bookingsLimiter := middleware.NewRateLimiter(cfg.RateLimitBookings, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/articles", articlesHandler.PublicList)
		api.Get("/articles/{id}", articlesHandler.PublicGetByID)
		api.Get("/slugArticle/{slug}", articlesHandler.PublicGetBySlug)

		api.Get("/courses", coursesHandler.PublicList)
		api.Get("/courses/{id}", coursesHandler.PublicGetByID)
		api.Get("/slugCourse/{slug}", coursesHandler.PublicGetBySlug)

		api.Get("/instructors", instructorsHandler.PublicList)
		api.Get("/instructors/{id}", instructorsHandler.PublicGetByID)

		api.Get("/accreditations", accreditationsHandler.PublicList)
		api.Get("/leadingCompanies", leadingCompaniesHandler.PublicList)

		api.Get("/homeMedia", siteMediaHandler.PublicListHome)
		api.Get("/citiesMedia", siteMediaHandler.PublicListCities)

		api.Get("/generalLinks", linksHandler.PublicGet)

		api.With(bookingsLimiter.Middleware).Post("/bookings", bookingsHandler.PublicCreate)

		api.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Post("/register", adminHandler.Register)
			adminRouter.Post("/login", adminHandler.Login)
			adminRouter.Post("/refresh", adminHandler.Refresh)
			adminRouter.Post("/logout", adminHandler.Logout)

			// chi requires middlewares before routes; auth endpoints stay
			// public, everything else goes through the protected group.
			adminRouter.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))

				protected.Post("/articles", articlesHandler.AdminCreate)
				protected.Put("/articles/{id}", articlesHandler.AdminUpdate)
				protected.Delete("/articles/{id}", articlesHandler.AdminDelete)

				protected.Post("/courses", coursesHandler.AdminCreate)
				protected.Put("/courses/{id}", coursesHandler.AdminUpdate)
				protected.Delete("/courses/{id}", coursesHandler.AdminDelete)

				protected.Post("/instructors", instructorsHandler.AdminCreate)
				protected.Put("/instructors/{id}", instructorsHandler.AdminUpdate)
				protected.Delete("/instructors/{id}", instructorsHandler.AdminDelete)

				protected.Post("/accreditations", accreditationsHandler.AdminCreate)
				protected.Put("/accreditations/{id}", accreditationsHandler.AdminUpdate)
				protected.Delete("/accreditations/{id}", accreditationsHandler.AdminDelete)

				protected.Post("/leadingCompanies", leadingCompaniesHandler.AdminCreate)
				protected.Put("/leadingCompanies/{id}", leadingCompaniesHandler.AdminUpdate)
				protected.Delete("/leadingCompanies/{id}", leadingCompaniesHandler.AdminDelete)

				protected.Post("/homeMedia", siteMediaHandler.AdminAddHome)
				protected.Put("/homeMedia/reorder", siteMediaHandler.AdminReorderHome)
				protected.Delete("/homeMedia/{id}", siteMediaHandler.AdminDeleteHome)
				protected.Put("/citiesMedia/{city}", siteMediaHandler.AdminSetCity)

				protected.Put("/generalLinks", linksHandler.AdminUpsert)

				protected.Get("/bookings", bookingsHandler.AdminList)
				protected.Get("/bookings/unreadCount", bookingsHandler.AdminUnreadCount)
				protected.Patch("/bookings/{id}/viewed", bookingsHandler.AdminMarkViewed)
				protected.Delete("/bookings/{id}", bookingsHandler.AdminDelete)

				protected.Post("/uploads/{resource}", uploadsHandler.Upload)
				protected.Delete("/uploads/{resource}", uploadsHandler.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
