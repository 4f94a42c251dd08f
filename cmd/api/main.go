package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/leave-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/sqlite"
	serviceAuth "github.com/cmlabs-hris/leave-backend-go/internal/service/auth"
	leaveService "github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/leave-backend-go/internal/service/notification"
	staffService "github.com/cmlabs-hris/leave-backend-go/internal/service/staff"
	userService "github.com/cmlabs-hris/leave-backend-go/internal/service/user"
)

type repositories struct {
	users  user.UserRepository
	staff  staff.StaffRepository
	leaves leave.LeaveRequestRepository
	close  func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("migrate postgres: %w", err)
		}
		return repositories{
			users:  postgresql.NewUserRepository(db),
			staff:  postgresql.NewStaffRepository(db),
			leaves: postgresql.NewLeaveRequestRepository(db),
			close:  db.Close,
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Database.SQLitePath)
		if err != nil {
			return repositories{}, fmt.Errorf("open sqlite: %w", err)
		}
		return repositories{
			users:  store.Users(),
			staff:  store.Staff(),
			leaves: store.Leaves(),
			close:  func() { _ = store.Close() },
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer repos.close()

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	notifier := notificationService.NewNotificationService(emailService, notificationService.Config{
		WorkerCount: cfg.Notification.Workers,
		QueueSize:   cfg.Notification.QueueSize,
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	accrualCalculator := leaveService.NewAccrualCalculator(cfg.Leave.AccrualDaysPerMonth)
	balanceService := leaveService.NewBalanceService(accrualCalculator)

	authService := serviceAuth.NewAuthService(repos.users, JWTService)
	leaveSvc := leaveService.NewLeaveService(repos.staff, repos.leaves, balanceService, notifier)
	staffSvc := staffService.NewStaffService(repos.staff, repos.users)
	userSvc := userService.NewUserService(repos.users, repos.staff, notifier)

	authHandler := appHTTP.NewAuthHandler(authService, cfg.App.Env == "production")
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	staffHandler := appHTTP.NewStaffHandler(staffSvc)
	userHandler := appHTTP.NewUserHandler(userSvc, cfg.App.HomePath)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			HomePath:       cfg.App.HomePath,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		authHandler,
		leaveHandler,
		staffHandler,
		userHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	// After the server so in-flight approvals can still queue their emails.
	notifier.Stop()
}
