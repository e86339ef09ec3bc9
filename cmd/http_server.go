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

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	authPostgres "github.com/frahmantamala/maintenance-management/internal/auth/postgres"
	"github.com/frahmantamala/maintenance-management/internal/core/events"
	"github.com/frahmantamala/maintenance-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/maintenance-management/internal/dashboard/postgres"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
	equipmentPostgres "github.com/frahmantamala/maintenance-management/internal/equipment/postgres"
	"github.com/frahmantamala/maintenance-management/internal/request"
	requestPostgres "github.com/frahmantamala/maintenance-management/internal/request/postgres"
	"github.com/frahmantamala/maintenance-management/internal/team"
	teamPostgres "github.com/frahmantamala/maintenance-management/internal/team/postgres"
	"github.com/frahmantamala/maintenance-management/internal/transport/rest"
	"github.com/frahmantamala/maintenance-management/internal/transport/swagger"
	"github.com/frahmantamala/maintenance-management/internal/user"
	userPostgres "github.com/frahmantamala/maintenance-management/internal/user/postgres"
	"github.com/frahmantamala/maintenance-management/pkg/logger"
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
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
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

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	log := deps.Logger

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		log.Warn("openapi spec validation failed", "error", err)
	}

	policy := auth.NewRolePolicy()
	eventBus := events.NewEventBus(log)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(log, userPostgres.NewUserRepository(deps.GormDB))
	userHandler := user.NewHandler(log, userService)

	equipmentService := equipment.NewService(log, equipmentPostgres.NewEquipmentRepository(deps.GormDB))
	equipmentHandler := equipment.NewHandler(log, equipmentService)

	// the scrap cascade: request SCRAP retires the linked equipment
	equipment.NewEventHandler(log, equipmentService).RegisterHandlers(eventBus)

	teamService := team.NewService(log, teamPostgres.NewTeamRepository(deps.GormDB))
	teamHandler := team.NewHandler(log, teamService)

	requestService := request.NewService(
		log,
		requestPostgres.NewRequestRepository(deps.GormDB),
		equipmentService,
		userService,
		policy,
		eventBus,
	)
	requestHandler := request.NewHandler(log, requestService)

	dashboardService := dashboard.NewService(log, dashboardPostgres.NewDashboardRepository(deps.GormDB))
	dashboardHandler := dashboard.NewHandler(log, dashboardService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.DB,
		policy,
		rest.Handlers{
			Auth:      authHandler,
			User:      userHandler,
			Equipment: equipmentHandler,
			Team:      teamHandler,
			Request:   requestHandler,
			Dashboard: dashboardHandler,
		},
		cfg.Server.AllowedOrigins,
		log,
	)

	return nil
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

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: log,
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

// initGormDB layers GORM over the already-open pgx connection so both see
// the same pool. TranslateError maps unique violations onto
// gorm.ErrDuplicatedKey for the repositories.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
}
