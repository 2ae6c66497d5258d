package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parisxmas/formdesk/internal/models"
)

// ErrSubmissionNotFound is returned when an identity key matches no record.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepo persists the append-only submission list as a flat JSON
// array on disk. All mutations are serialized behind a mutex and written
// with a temp-file-then-rename so the file is never observed half-written:
// a failed rewrite leaves the previous state fully intact.
type SubmissionRepo struct {
	mu   sync.Mutex
	path string
}

func NewSubmissionRepo(path string) *SubmissionRepo {
	return &SubmissionRepo{path: path}
}

// All returns every submission in insertion order.
func (r *SubmissionRepo) All() ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Append adds one submission to the end of the list.
func (r *SubmissionRepo) Append(sub *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return err
	}
	subs = append(subs, *sub)
	return r.save(subs)
}

// FindByKey returns the first submission carrying the (nom, prenom) pair,
// or (nil, nil) when the key is absent.
func (r *SubmissionRepo) FindByKey(nom, prenom string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].Matches(nom, prenom) {
			s := subs[i]
			return &s, nil
		}
	}
	return nil, nil
}

// DeleteByKey removes the first submission carrying the key and returns it.
// ErrSubmissionNotFound when the key is absent; on any write failure the
// record stays in the store.
func (r *SubmissionRepo) DeleteByKey(nom, prenom string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].Matches(nom, prenom) {
			removed := subs[i]
			rest := append(subs[:i:i], subs[i+1:]...)
			if err := r.save(rest); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, ErrSubmissionNotFound
}

func (r *SubmissionRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

func (r *SubmissionRepo) load() ([]models.Submission, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var subs []models.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return subs, nil
}

func (r *SubmissionRepo) save(subs []models.Submission) error {
	if subs == nil {
		subs = []models.Submission{}
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".submissions-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(subs); err != nil {
		tmp.Close()
		return fmt.Errorf("encode submissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
