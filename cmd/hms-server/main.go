package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/medicare/hms/internal/config"
	"github.com/medicare/hms/internal/domain/billing"
	"github.com/medicare/hms/internal/domain/lab"
	"github.com/medicare/hms/internal/domain/pharmacy"
	"github.com/medicare/hms/internal/domain/radiology"
	"github.com/medicare/hms/internal/platform/auth"
	"github.com/medicare/hms/internal/platform/export"
	"github.com/medicare/hms/internal/platform/gateway"
	"github.com/medicare/hms/internal/platform/middleware"
)

var rootCmd = &cobra.Command{
	Use:   "hms-server",
	Short: "Hospital department and billing API server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var (
	exportResource string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a department worklist as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(exportResource, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportResource, "resource", "prescriptions", "what to export: prescriptions, tests or scans")
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output file, - for stdout")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.Logger
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":   "ok",
			"hospital": cfg.HospitalName,
		})
	})

	tokenCfg := auth.TokenConfig{
		Secret: []byte(cfg.AuthSecret),
		TTL:    cfg.SessionTTL(),
	}

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	// Login stays outside the auth middleware.
	auth.NewHandler(tokenCfg).RegisterRoutes(api)

	protected := api.Group("")
	if cfg.IsDev() {
		protected.Use(auth.DevAuthMiddleware())
	} else {
		protected.Use(auth.JWTMiddleware(tokenCfg))
	}

	// Billing lives on the pharmacy dashboard, so its routes share the
	// pharma role gate.
	gw := gateway.NewSandbox(cfg.GatewayKeyID, cfg.GatewayKeySecret)
	ledger := billing.NewBillLedgerMem()
	billingSvc := billing.NewService(billing.ServiceConfig{
		Currency:       cfg.Currency,
		GatewayTimeout: cfg.GatewayTimeout(),
	}, ledger, gw, logger)
	pharmacyGroup := protected.Group("", auth.RequireRole("pharma"))
	billing.NewHandler(billingSvc).RegisterRoutes(pharmacyGroup)

	pharmacySvc := pharmacy.NewService(pharmacy.NewRepoMem(), pharmacy.NewInventoryRepoMem(), logger)
	pharmacy.NewHandler(pharmacySvc).RegisterRoutes(pharmacyGroup)

	labSvc := lab.NewService(lab.NewRepoMem(), logger)
	labGroup := protected.Group("", auth.RequireRole("lab"))
	lab.NewHandler(labSvc).RegisterRoutes(labGroup)

	radiologySvc := radiology.NewService(radiology.NewRepoMem(), logger)
	radiologyGroup := protected.Group("", auth.RequireRole("radiology"))
	radiology.NewHandler(radiologySvc).RegisterRoutes(radiologyGroup)

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("env", cfg.Env).
		Str("hospital", cfg.HospitalName).
		Msg("starting server")

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func runExport(resource, out string) error {
	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	switch resource {
	case "prescriptions":
		var rows [][]string
		for _, rx := range pharmacy.NewRepoMem().All() {
			rows = append(rows, []string{rx.ID, rx.Patient, rx.Medication, rx.Status, rx.Priority, rx.Time})
		}
		return export.WriteCSV(w, []string{"id", "patient", "medication", "status", "priority", "time"}, rows)
	case "tests":
		var rows [][]string
		for _, o := range lab.NewRepoMem().All() {
			rows = append(rows, []string{o.ID, o.Patient, o.Test, o.Status, o.Priority, o.Time})
		}
		return export.WriteCSV(w, []string{"id", "patient", "test", "status", "priority", "time"}, rows)
	case "scans":
		var rows [][]string
		for _, s := range radiology.NewRepoMem().All() {
			rows = append(rows, []string{s.ID, s.Patient, s.Scan, s.Status, s.Priority, s.Time, s.Machine})
		}
		return export.WriteCSV(w, []string{"id", "patient", "scan", "status", "priority", "time", "machine"}, rows)
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
}
