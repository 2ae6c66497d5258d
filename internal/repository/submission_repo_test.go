package repository_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
)

func newSubRepo(t *testing.T) *repository.SubmissionRepo {
	t.Helper()
	return repository.NewSubmissionRepo(filepath.Join(t.TempDir(), "data.json"))
}

func TestSubmissionAppendAndAll(t *testing.T) {
	repo := newSubRepo(t)

	subs, err := repo.All()
	if err != nil {
		t.Fatalf("all on empty store: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty store, got %d records", len(subs))
	}

	for _, s := range []models.Submission{
		{Nom: "Martin", Prenom: "Lea", Email: "lea@x.com", Horodatage: "2026-08-30 10:00:00"},
		{Nom: "Durand", Prenom: "Paul", Email: "paul@x.com", Horodatage: "2026-08-30 10:05:00",
			Fichiers: []string{"Durand_Paul_id_cni.pdf"}},
	} {
		s := s
		if err := repo.Append(&s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	subs, err = repo.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(subs))
	}
	if subs[0].Nom != "Martin" || subs[1].Nom != "Durand" {
		t.Fatalf("insertion order not preserved: %q, %q", subs[0].Nom, subs[1].Nom)
	}
}

func TestSubmissionFindByKey(t *testing.T) {
	repo := newSubRepo(t)
	if err := repo.Append(&models.Submission{Nom: "Martin", Prenom: "Lea", Email: "lea@x.com"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	sub, err := repo.FindByKey("Martin", "Lea")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if sub == nil || sub.Email != "lea@x.com" {
		t.Fatalf("expected Lea Martin, got %+v", sub)
	}

	sub, err = repo.FindByKey("Martin", "Paul")
	if err != nil {
		t.Fatalf("find absent key: %v", err)
	}
	if sub != nil {
		t.Fatalf("expected nil for absent key, got %+v", sub)
	}
}

func TestSubmissionDeleteByKey(t *testing.T) {
	repo := newSubRepo(t)
	if err := repo.Append(&models.Submission{Nom: "Martin", Prenom: "Lea",
		Fichiers: []string{"Martin_Lea_id_cni.pdf"}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	removed, err := repo.DeleteByKey("Martin", "Lea")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(removed.Fichiers) != 1 || removed.Fichiers[0] != "Martin_Lea_id_cni.pdf" {
		t.Fatalf("removed record lost its file list: %+v", removed)
	}

	if _, err := repo.DeleteByKey("Martin", "Lea"); !errors.Is(err, repository.ErrSubmissionNotFound) {
		t.Fatalf("second delete: expected ErrSubmissionNotFound, got %v", err)
	}

	subs, err := repo.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty store after delete, got %d", len(subs))
	}
}

func TestSubmissionStoreSurvivesCorruptRejection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	repo := repository.NewSubmissionRepo(path)

	if _, err := repo.All(); err == nil {
		t.Fatal("expected parse error on corrupt store")
	}
	// The broken file must not be clobbered by the failed read.
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{not json" {
		t.Fatalf("corrupt store was altered: %q, %v", data, err)
	}
}
