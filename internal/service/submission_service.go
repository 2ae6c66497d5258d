package service

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/storage"
)

// Intake categories, in the order document names are recorded on the
// submission: identity documents, residence proof, host documents, host
// identity, host attestation.
const (
	CategoryID                     = "id"
	CategoryDomicile               = "domicile"
	CategoryHebergeur              = "hebergeur"
	CategoryIdentiteHebergeant     = "identite_hebergeant"
	CategoryAttestationHebergement = "attestation_hebergement"
)

// ErrNoFiles is returned by Archive when the key matches no submission
// or the submission carries no documents.
var ErrNoFiles = errors.New("no files for this applicant")

// ErrMissingField is returned when a required intake field is empty.
var ErrMissingField = errors.New("missing required field")

// Notifier delivers the post-intake confirmation notices.
type Notifier interface {
	SubmissionReceived(sub *models.Submission) error
}

// Upload is one incoming document with its intake category.
type Upload struct {
	Category string
	Filename string
	Data     io.Reader
}

type SubmissionService struct {
	subs     *repository.SubmissionRepo
	files    *storage.Store
	notifier Notifier
}

func NewSubmissionService(subs *repository.SubmissionRepo, files *storage.Store, notifier Notifier) *SubmissionService {
	return &SubmissionService{subs: subs, files: files, notifier: notifier}
}

// Intake stores every uploaded document under its derived name, appends
// the submission record referencing them, then dispatches the
// confirmation notices off the caller's path. Files are written before
// the record so a crash can orphan files but never leave a record
// pointing at nothing. On any failure the already-written files are
// removed and nothing is recorded.
func (s *SubmissionService) Intake(nom, prenom, email string, uploads []Upload) (*models.Submission, error) {
	if nom == "" || prenom == "" || email == "" {
		return nil, ErrMissingField
	}

	var stored []string
	cleanup := func() {
		for _, name := range stored {
			if err := s.files.Remove(name); err != nil {
				log.Printf("Warning: intake cleanup of %s failed: %v", name, err)
			}
		}
	}

	for _, u := range uploads {
		name := storage.DerivedName(nom, prenom, u.Category, u.Filename)
		if err := s.files.Save(name, u.Data); err != nil {
			cleanup()
			return nil, fmt.Errorf("store %s upload: %w", u.Category, err)
		}
		stored = append(stored, name)
	}

	sub := &models.Submission{
		Nom:        nom,
		Prenom:     prenom,
		Email:      email,
		Horodatage: time.Now().Format("2006-01-02 15:04:05"),
		Fichiers:   stored,
	}
	if err := s.subs.Append(sub); err != nil {
		cleanup()
		return nil, err
	}

	if s.notifier != nil {
		go func(sub models.Submission) {
			if err := s.notifier.SubmissionReceived(&sub); err != nil {
				log.Printf("Warning: confirmation mail for %s %s failed: %v", sub.Nom, sub.Prenom, err)
			}
		}(*sub)
	}

	return sub, nil
}

func (s *SubmissionService) List() ([]models.Submission, error) {
	return s.subs.All()
}

func (s *SubmissionService) Count() (int, error) {
	return s.subs.Count()
}

// Delete removes the submission for the key and then its documents from
// storage, tolerating already-missing files. The record is removed first
// so a failure leaves the prior state intact; once it is gone, file
// removal errors are logged rather than resurrecting the record.
func (s *SubmissionService) Delete(nom, prenom string) error {
	sub, err := s.subs.DeleteByKey(nom, prenom)
	if err != nil {
		return err
	}
	for _, name := range sub.Fichiers {
		if err := s.files.Remove(name); err != nil {
			log.Printf("Warning: removing %s for deleted submission failed: %v", name, err)
		}
	}
	return nil
}

// Archive writes a zip containing every existing document of the key's
// submission. Documents referenced but missing on disk are skipped;
// an unknown key or an empty document list yields ErrNoFiles.
func (s *SubmissionService) Archive(nom, prenom string, w io.Writer) error {
	sub, err := s.subs.FindByKey(nom, prenom)
	if err != nil {
		return err
	}
	if sub == nil || len(sub.Fichiers) == 0 {
		return ErrNoFiles
	}

	zw := zip.NewWriter(w)
	for _, name := range sub.Fichiers {
		f, err := s.files.Open(name)
		if err != nil {
			continue // referenced but gone: excluded, not fatal
		}
		entry, err := zw.Create(name)
		if err != nil {
			f.Close()
			zw.Close()
			return fmt.Errorf("archive entry %s: %w", name, err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			zw.Close()
			return fmt.Errorf("archive copy %s: %w", name, err)
		}
		f.Close()
	}
	return zw.Close()
}
