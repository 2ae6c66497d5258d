package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/parisxmas/formdesk/internal/config"
	"github.com/parisxmas/formdesk/internal/db"
	"github.com/parisxmas/formdesk/internal/gelf"
	"github.com/parisxmas/formdesk/internal/handler"
	"github.com/parisxmas/formdesk/internal/mailer"
	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/router"
	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

func main() {
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr, "formdesk")
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Relational store (dossiers, staff accounts)
	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Upload directory and submission list
	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepo(gdb)
	dossierRepo := repository.NewDossierRepo(gdb)
	subRepo := repository.NewSubmissionRepo(cfg.DataJSON)

	// Services
	notifier := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.OpsEmail)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	dossierSvc := service.NewDossierService(dossierRepo, files)
	subSvc := service.NewSubmissionService(subRepo, files, notifier)

	if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Printf("Warning: failed to seed admin: %v", err)
	}

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	publicH := handler.NewPublicHandler(subSvc, files)
	adminH := handler.NewAdminHandler(dossierSvc, subSvc)
	dossierH := handler.NewDossierHandler(dossierSvc, files)
	subH := handler.NewSubmissionHandler(subSvc)
	dashH := handler.NewDashboardHandler(dossierSvc, subSvc, files)

	// Router
	r := router.New(cfg.JWTSecret, authH, publicH, adminH, dossierH, subH, dashH)

	log.Printf("Formdesk server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
