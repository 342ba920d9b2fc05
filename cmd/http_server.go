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

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/assignment"
	assignmentstore "github.com/staffgrid/backend/internal/assignment/postgres"
	"github.com/staffgrid/backend/internal/audit"
	"github.com/staffgrid/backend/internal/auth"
	authstore "github.com/staffgrid/backend/internal/auth/postgres"
	"github.com/staffgrid/backend/internal/availability"
	availabilitystore "github.com/staffgrid/backend/internal/availability/postgres"
	"github.com/staffgrid/backend/internal/core/events"
	"github.com/staffgrid/backend/internal/department"
	departmentstore "github.com/staffgrid/backend/internal/department/postgres"
	"github.com/staffgrid/backend/internal/employee"
	employeestore "github.com/staffgrid/backend/internal/employee/postgres"
	"github.com/staffgrid/backend/internal/shift"
	shiftstore "github.com/staffgrid/backend/internal/shift/postgres"
	"github.com/staffgrid/backend/internal/timeoff"
	timeoffstore "github.com/staffgrid/backend/internal/timeoff/postgres"
	"github.com/staffgrid/backend/internal/transport"
	"github.com/staffgrid/backend/internal/transport/rest"
	"github.com/staffgrid/backend/internal/transport/swagger"
	"github.com/staffgrid/backend/internal/user"
	userstore "github.com/staffgrid/backend/internal/user/postgres"
	"github.com/staffgrid/backend/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the same pool the health check pings
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if err := swagger.ValidateSpec("./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec is invalid, swagger ui may not render", "error", err)
	}

	bus := events.NewEventBus(lg)
	audit.NewRecorder(gormDB, lg).Subscribe(bus)

	baseHandler := transport.NewBaseHandler(lg)

	authRepo := authstore.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	userRepo := userstore.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, config.Security.BCryptCost, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	departmentRepo := departmentstore.NewDepartmentRepository(gormDB)
	departmentService := department.NewService(departmentRepo, lg)
	departmentHandler := department.NewHandler(baseHandler, departmentService)

	employeeRepo := employeestore.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, departmentRepo, userRepo, lg)
	employeeHandler := employee.NewHandler(baseHandler, employeeService)

	availabilityRepo := availabilitystore.NewAvailabilityRepository(gormDB)
	availabilityService := availability.NewService(availabilityRepo, lg)
	availabilityHandler := availability.NewHandler(baseHandler, availabilityService)

	timeOffRepo := timeoffstore.NewTimeOffRepository(gormDB)
	timeOffService := timeoff.NewService(timeOffRepo, bus, lg)
	timeOffHandler := timeoff.NewHandler(baseHandler, timeOffService)

	shiftRepo := shiftstore.NewShiftRepository(gormDB)
	shiftService := shift.NewService(shiftRepo, departmentRepo, lg)
	shiftHandler := shift.NewHandler(baseHandler, shiftService)

	assignmentRepo := assignmentstore.NewAssignmentRepository(gormDB)
	evaluator := assignment.NewConflictEvaluator(assignmentRepo, timeOffRepo, availabilityRepo)
	assignmentService := assignment.NewService(assignmentRepo, shiftRepo, employeeRepo, evaluator, bus, lg)
	assignmentHandler := assignment.NewHandler(baseHandler, assignmentService)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:         authHandler,
			User:         userHandler,
			Department:   departmentHandler,
			Employee:     employeeHandler,
			Availability: availabilityHandler,
			TimeOff:      timeOffHandler,
			Shift:        shiftHandler,
			Assignment:   assignmentHandler,
		},
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
