package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dq-report-service/internal/auth"
	"dq-report-service/internal/backend"
	"dq-report-service/internal/config"
	"dq-report-service/internal/models"
	"dq-report-service/internal/repository"
	"dq-report-service/internal/routes"
	"dq-report-service/internal/services/dq"
	"dq-report-service/internal/services/email"
	"dq-report-service/internal/services/pdf"
	"dq-report-service/internal/services/reporting"
	"dq-report-service/internal/services/watch"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	renders := repository.NewReportRenderRepository(db)
	if !renders.Enabled() {
		log.Println("DATABASE_URL not set, render history and watch persistence disabled")
	} else if err := db.AutoMigrate(&models.ReportRender{}, &models.UploadWatch{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pred, err := dq.PredicateByName(cfg.FailureFilter)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	emails, err := email.NewComposer(email.Options{
		PublicAppURL: cfg.PublicAppURL,
		ProductName:  cfg.ProductName,
	})
	if err != nil {
		log.Fatalf("email templates: %v", err)
	}
	reportingSvc := reporting.NewService(emails, pdf.NewComposer(cfg.ProductName), renders, pred)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watches *watch.Service
	if cfg.BackendURL != "" {
		watches = watch.NewService(ctx,
			backend.NewClient(cfg.BackendURL, cfg.BackendToken, cfg.RequestTimeout),
			repository.NewUploadWatchRepository(db),
			watch.Options{
				PollInterval: cfg.PollInterval,
				MaxWait:      cfg.MaxWait,
				OnComplete:   reportingSvc.OnUploadChecked,
			})
		n, err := watches.Resume()
		if err != nil {
			log.Printf("resume watches: %v", err)
		}
		log.Printf("resumed %d pending upload watches", n)
	} else {
		log.Println("BACKEND_URL not set, upload watches disabled")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Validator: auth.NewValidator(cfg.BearerToken, cfg.JWTSecret),
		Reporting: reportingSvc,
		Watch:     watches,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if watches != nil {
		watches.Shutdown()
	}
}
