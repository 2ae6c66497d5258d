package service_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

func newDossierService(t *testing.T) (*service.DossierService, *storage.Store) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Dossier{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	files, err := storage.New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return service.NewDossierService(repository.NewDossierRepo(gdb), files), files
}

func TestAttestationGeneration(t *testing.T) {
	svc, files := newDossierService(t)

	d := &models.Dossier{Nom: "Martin", Prenom: "Lea", Formation: "SSIAP 1", Session: "2026-09-15"}
	if err := svc.Create(d); err != nil {
		t.Fatalf("create dossier: %v", err)
	}

	name, err := svc.Attestation(d.ID)
	if err != nil {
		t.Fatalf("attestation: %v", err)
	}
	if name != "attestation_Martin_Lea.docx" {
		t.Fatalf("unexpected attestation name %q", name)
	}
	if !files.Exists(name) {
		t.Fatalf("attestation %q not persisted", name)
	}
}

func TestAttestationUnknownDossier(t *testing.T) {
	svc, _ := newDossierService(t)
	if _, err := svc.Attestation(42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDossierCreateValidation(t *testing.T) {
	svc, _ := newDossierService(t)
	if err := svc.Create(&models.Dossier{Nom: "Martin"}); !errors.Is(err, service.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestDossierListWithFilter(t *testing.T) {
	svc, _ := newDossierService(t)
	for _, d := range []models.Dossier{
		{Nom: "Martin", Prenom: "Lea", StatutCNAPS: "En cours"},
		{Nom: "Durand", Prenom: "Paul", StatutCNAPS: "Validé"},
	} {
		d := d
		if err := svc.Create(&d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	dossiers, statuts, err := svc.List("Validé")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dossiers) != 1 || dossiers[0].Nom != "Durand" {
		t.Fatalf("filter returned %+v", dossiers)
	}
	if len(statuts) != 2 {
		t.Fatalf("expected both statuses available for the filter control, got %v", statuts)
	}
}
