package storage_test

import (
	"strings"
	"testing"

	"github.com/parisxmas/formdesk/internal/storage"
)

func TestDerivedName(t *testing.T) {
	got := storage.DerivedName("Martin", "Lea", "id", "cni.pdf")
	if got != "Martin_Lea_id_cni.pdf" {
		t.Fatalf("expected Martin_Lea_id_cni.pdf, got %q", got)
	}

	// Deterministic: same inputs, same name.
	if again := storage.DerivedName("Martin", "Lea", "id", "cni.pdf"); again != got {
		t.Fatalf("name not deterministic: %q vs %q", got, again)
	}

	// Path components and separators in the original name are neutralized.
	got = storage.DerivedName("Le Roux", "Anne", "domicile", "../../etc/passwd")
	if strings.ContainsAny(got, "/\\ ") {
		t.Fatalf("unsafe derived name: %q", got)
	}
	if got != "Le-Roux_Anne_domicile_passwd" {
		t.Fatalf("unexpected derived name: %q", got)
	}
}

func TestStoreSaveOpenRemove(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name := storage.DerivedName("Martin", "Lea", "id", "cni.pdf")
	if err := store.Save(name, strings.NewReader("pdf-bytes")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.Exists(name) {
		t.Fatalf("saved file %q not found", name)
	}

	f, err := store.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f.Close()

	if err := store.Remove(name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if store.Exists(name) {
		t.Fatalf("file %q still present after remove", name)
	}

	// Removing a missing file is not an error.
	if err := store.Remove(name); err != nil {
		t.Fatalf("remove of missing file: %v", err)
	}
}

func TestStorePathRejectsTraversal(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, bad := range []string{"", ".", "..", "../secret", "a/b", "uploads/../x"} {
		if _, err := store.Path(bad); err == nil {
			t.Fatalf("expected rejection of %q", bad)
		}
	}
}

func TestStoreCount(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if err := store.Save(name, strings.NewReader("x")); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	n, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 files, got %d", n)
	}
}
