package repository_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
)

func newDossierRepo(t *testing.T) *repository.DossierRepo {
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
	return repository.NewDossierRepo(gdb)
}

func seedDossiers(t *testing.T, repo *repository.DossierRepo) []models.Dossier {
	t.Helper()
	seed := []models.Dossier{
		{Nom: "Martin", Prenom: "Lea", Formation: "SSIAP 1", Session: "2026-09-15", StatutCNAPS: "En cours"},
		{Nom: "Durand", Prenom: "Paul", Formation: "CQP APS", Session: "2026-10-01", StatutCNAPS: "Validé"},
		{Nom: "Bernard", Prenom: "Alice", Formation: "CQP APS", Session: "2026-10-01", StatutCNAPS: "En cours"},
	}
	for i := range seed {
		if err := repo.Create(&seed[i]); err != nil {
			t.Fatalf("seed dossier: %v", err)
		}
	}
	return seed
}

func TestDossierFilterByStatutCNAPS(t *testing.T) {
	repo := newDossierRepo(t)
	seedDossiers(t, repo)

	filtered, err := repo.FindAll("En cours")
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 dossiers with statut 'En cours', got %d", len(filtered))
	}
	for _, d := range filtered {
		if d.StatutCNAPS != "En cours" {
			t.Fatalf("filter leaked dossier %d with statut %q", d.ID, d.StatutCNAPS)
		}
	}

	all, err := repo.FindAll(repository.FilterAll)
	if err != nil {
		t.Fatalf("unfiltered list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("sentinel filter: expected 3 dossiers, got %d", len(all))
	}
}

func TestDossierDistinctStatuts(t *testing.T) {
	repo := newDossierRepo(t)
	seedDossiers(t, repo)

	statuts, err := repo.DistinctStatutsCNAPS()
	if err != nil {
		t.Fatalf("distinct statuts: %v", err)
	}
	want := []string{"En cours", "Validé"}
	if !reflect.DeepEqual(statuts, want) {
		t.Fatalf("expected %v, got %v", want, statuts)
	}
}

func TestDossierUpdateFieldTouchesOnlyThatField(t *testing.T) {
	repo := newDossierRepo(t)
	seedDossiers(t, repo)

	before, err := repo.FindAll(repository.FilterAll)
	if err != nil {
		t.Fatalf("list before: %v", err)
	}

	target := before[1]
	if err := repo.UpdateField(target.ID, "statut_cnaps", "Refusé"); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, err := repo.FindAll(repository.FilterAll)
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	for i := range before {
		got, want := after[i], before[i]
		if want.ID == target.ID {
			want.StatutCNAPS = "Refusé"
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("dossier %d changed beyond the mutated field:\nbefore: %+v\nafter:  %+v", want.ID, want, got)
		}
	}
}

func TestDossierUpdateFieldUnknownID(t *testing.T) {
	repo := newDossierRepo(t)
	seedDossiers(t, repo)

	if err := repo.UpdateField(999, "statut", "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateField(1, "nom", "x"); err == nil {
		t.Fatal("expected rejection of non-mutable column")
	}
}

func TestDossierDelete(t *testing.T) {
	repo := newDossierRepo(t)
	seed := seedDossiers(t, repo)

	if err := repo.Delete(seed[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(seed[0].ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	rest, err := repo.FindAll(repository.FilterAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 dossiers after delete, got %d", len(rest))
	}
}
