package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	authstore "github.com/talenthub/talent-hub/internal/auth/postgres"
	"github.com/talenthub/talent-hub/internal/certificate"
	certstore "github.com/talenthub/talent-hub/internal/certificate/postgres"
	"github.com/talenthub/talent-hub/internal/core/common/filestore"
	"github.com/talenthub/talent-hub/internal/course"
	coursestore "github.com/talenthub/talent-hub/internal/course/postgres"
	"github.com/talenthub/talent-hub/internal/notification"
	notifstore "github.com/talenthub/talent-hub/internal/notification/postgres"
	"github.com/talenthub/talent-hub/internal/project"
	projectstore "github.com/talenthub/talent-hub/internal/project/postgres"
	"github.com/talenthub/talent-hub/internal/realtime"
	"github.com/talenthub/talent-hub/internal/request"
	requeststore "github.com/talenthub/talent-hub/internal/request/postgres"
	"github.com/talenthub/talent-hub/internal/transport/rest"
	"github.com/talenthub/talent-hub/internal/user"
	userstore "github.com/talenthub/talent-hub/internal/user/postgres"
	"github.com/talenthub/talent-hub/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the already-open pgx connection. TranslateError turns
	// unique-index violations into gorm.ErrDuplicatedKey, which the request
	// repositories rely on.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	// stores
	authRepo := authstore.NewAuthRepository(gormDB)
	userRepo := userstore.NewUserRepository(gormDB)
	courseRepo := coursestore.NewCourseRepository(gormDB)
	projectRepo := projectstore.NewProjectRepository(gormDB)
	courseReqRepo := requeststore.NewCourseRequestRepository(gormDB)
	projectReqRepo := requeststore.NewProjectRequestRepository(gormDB)
	certRepo := certstore.NewCertificateRepository(gormDB)
	notifRepo := notifstore.NewNotificationRepository(gormDB)

	files := filestore.NewDiskStore(config.Uploads.Dir)

	// realtime hub and notification fan-out
	hub := realtime.NewHub(log)
	dispatcher := notification.NewDispatcher(notifRepo, hub, log)

	// services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.JWTSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(authRepo, tokenGen, log)
	userService := user.NewService(userRepo, files, log, config.Uploads.MaxPhotoSize)
	courseService := course.NewService(courseRepo, log)
	projectService := project.NewService(projectRepo, log)
	requestService := request.NewService(courseReqRepo, projectReqRepo, courseService, projectService, dispatcher, log)
	certService := certificate.NewService(certRepo, files, dispatcher, log, config.Uploads.MaxCertificateSize)
	notifService := notification.NewService(notifRepo, log)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService, config.Uploads.MaxPhotoSize),
		Course:       course.NewHandler(courseService),
		Project:      project.NewHandler(projectService),
		Request:      request.NewHandler(requestService),
		Certificate:  certificate.NewHandler(certService, config.Uploads.MaxCertificateSize),
		Notification: notification.NewHandler(notifService),
		Realtime:     realtime.NewHandler(hub, authService, log),
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, config.Server.AllowedOrigins, log)

	// uploaded certificates and photos are served as static files
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Uploads.Dir))))

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: router,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
