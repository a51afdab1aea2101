package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/sarang-church/groupware-backend-go/internal/config"
	"github.com/sarang-church/groupware-backend-go/internal/domain/holiday"
	domainReservation "github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	appHTTP "github.com/sarang-church/groupware-backend-go/internal/handler/http"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/cron"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/jwt"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/storage"
	"github.com/sarang-church/groupware-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/sarang-church/groupware-backend-go/internal/service/auth"
	"github.com/sarang-church/groupware-backend-go/internal/service/file"
	"github.com/sarang-church/groupware-backend-go/internal/service/leave"
	"github.com/sarang-church/groupware-backend-go/internal/service/reservation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return err
		}
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	holidays, err := holiday.Load(cfg.Calendar.HolidaysFile)
	if err != nil {
		return err
	}
	fixedBlocks, err := domainReservation.LoadFixedBlocks(cfg.Timeline.FixedBlocksFile)
	if err != nil {
		return err
	}

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	resourceRepo := postgresql.NewResourceRepository(db)
	reservationRepo := postgresql.NewReservationRepository(db)
	transactor := postgresql.NewTransactor(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	leaveService := leave.NewLeaveService(transactor, leaveRequestRepo, userRepo, holidays)
	reservationService := reservation.NewReservationService(transactor, resourceRepo, reservationRepo, fileService, reservation.Options{
		StartHour:   cfg.Timeline.StartHour,
		EndHour:     cfg.Timeline.EndHour,
		Location:    location,
		FixedBlocks: fixedBlocks,
	})

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadDir:      cfg.Storage.BasePath,
	}, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authService),
		Leave:       appHTTP.NewLeaveHandler(leaveService),
		Reservation: appHTTP.NewReservationHandler(reservationService),
		User:        appHTTP.NewUserHandler(leaveService),
	})

	scheduler := cron.NewScheduler()
	scheduler.AddJob("prune-revoked-tokens", 15*time.Minute, func(ctx context.Context) error {
		if n := JWTService.PruneRevoked(); n > 0 {
			slog.Info("Pruned revoked tokens", "count", n)
		}
		return nil
	})
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		stop()
		scheduler.Wait()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	scheduler.Wait()
	return nil
}
