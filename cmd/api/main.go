package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davomat/davomat-backend-go/internal/config"
	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	appHTTP "github.com/davomat/davomat-backend-go/internal/handler/http"
	"github.com/davomat/davomat-backend-go/internal/pkg/cron"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/davomat/davomat-backend-go/internal/pkg/jwt"
	"github.com/davomat/davomat-backend-go/internal/pkg/lock"
	"github.com/davomat/davomat-backend-go/internal/pkg/sse"
	"github.com/davomat/davomat-backend-go/internal/repository/mongodb"
	"github.com/davomat/davomat-backend-go/internal/repository/postgresql"
	attendanceService "github.com/davomat/davomat-backend-go/internal/service/attendance"
	departmentService "github.com/davomat/davomat-backend-go/internal/service/department"
	userService "github.com/davomat/davomat-backend-go/internal/service/user"
)

const version = "v1.0.0"

type repositories struct {
	tx          database.Transactor
	users       user.UserRepository
	departments department.DepartmentRepository
	logs        attendance.LogRepository
	close       func()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &repositories{
			tx:          postgresql.NewTransactor(db),
			users:       postgresql.NewUserRepository(db),
			departments: postgresql.NewDepartmentRepository(db),
			logs:        postgresql.NewAttendanceLogRepository(db),
			close:       db.Close,
		}, nil

	case config.DriverMongo:
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = db.Close(context.Background())
			return nil, err
		}
		return &repositories{
			tx:          mongodb.NewTransactor(db, cfg.Mongo.Transactions),
			users:       mongodb.NewUserRepository(db),
			departments: mongodb.NewDepartmentRepository(db),
			logs:        mongodb.NewAttendanceLogRepository(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = db.Close(ctx)
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func newLocker(cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		slog.Warn("REDIS_ADDR not set, daily reset lock is local to this process")
		return lock.NewMemoryLocker(), func() {}, nil
	}

	client, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return lock.NewRedisLocker(client, "davomat:"), func() { _ = client.Close() }, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})).With(slog.String("app", "davomat"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, openRepositories); err != nil {
		slog.Error("Server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Resources opened here are closed on every
// return path, including startup failures.
func run(
	ctx context.Context,
	cfg *config.Config,
	open func(context.Context, *config.Config) (*repositories, error),
) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	repos, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}
	defer repos.close()

	locker, closeLocker, err := newLocker(cfg)
	if err != nil {
		return fmt.Errorf("initialize lock: %w", err)
	}
	defer closeLocker()

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(repos.tx, repos.users, repos.logs, hub, cfg.Attendance.Workday())
	userSvc := userService.NewUserService(repos.tx, repos.users, repos.departments)
	departmentSvc := departmentService.NewDepartmentService(repos.departments, repos.users)

	scheduler := cron.NewScheduler(cfg.Attendance.Location())
	jobs := cron.NewAttendanceJobs(attendanceSvc, locker, cfg.Attendance.Location())
	if err := jobs.RegisterJobs(scheduler, cfg.Attendance.ResetCron); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPostHandler(attendanceSvc, hub),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Cancelled on shutdown so open monitor streams end.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("serve: %w", err)
		}
	}
	stop()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	return runErr
}
