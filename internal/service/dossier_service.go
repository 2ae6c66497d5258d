package service

import (
	"fmt"

	"github.com/gomutex/godocx"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/storage"
)

type DossierService struct {
	dossiers *repository.DossierRepo
	files    *storage.Store
}

func NewDossierService(dossiers *repository.DossierRepo, files *storage.Store) *DossierService {
	return &DossierService{dossiers: dossiers, files: files}
}

// List returns dossiers under the optional CNAPS filter plus the
// distinct status values available for filtering.
func (s *DossierService) List(filtreCNAPS string) ([]models.Dossier, []string, error) {
	dossiers, err := s.dossiers.FindAll(filtreCNAPS)
	if err != nil {
		return nil, nil, err
	}
	statuts, err := s.dossiers.DistinctStatutsCNAPS()
	if err != nil {
		return nil, nil, err
	}
	return dossiers, statuts, nil
}

// Create seeds one dossier. The public surface never calls this; it
// exists so a fresh deployment can be populated from the admin side.
func (s *DossierService) Create(d *models.Dossier) error {
	if d.Nom == "" || d.Prenom == "" {
		return ErrMissingField
	}
	return s.dossiers.Create(d)
}

func (s *DossierService) UpdateStatut(id uint, statut string) error {
	return s.dossiers.UpdateField(id, "statut", statut)
}

func (s *DossierService) UpdateStatutCNAPS(id uint, statut string) error {
	return s.dossiers.UpdateField(id, "statut_cnaps", statut)
}

func (s *DossierService) UpdateCommentaire(id uint, commentaire string) error {
	return s.dossiers.UpdateField(id, "commentaire", commentaire)
}

func (s *DossierService) Delete(id uint) error {
	return s.dossiers.Delete(id)
}

func (s *DossierService) Count() (int64, error) {
	return s.dossiers.Count()
}

// Attestation renders the pre-registration attestation for one dossier,
// persists it under the upload directory and returns the stored name.
func (s *DossierService) Attestation(id uint) (string, error) {
	d, err := s.dossiers.FindByID(id)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", repository.ErrNotFound
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create attestation document: %w", err)
	}
	if _, err := doc.AddHeading("Attestation de Préinscription", 0); err != nil {
		return "", fmt.Errorf("attestation heading: %w", err)
	}
	doc.AddParagraph(fmt.Sprintf("%s %s est préinscrit(e) à la formation %s le %s.",
		d.Prenom, d.Nom, d.Formation, d.Session))

	name := fmt.Sprintf("attestation_%s_%s.docx", storage.Sanitize(d.Nom), storage.Sanitize(d.Prenom))
	path, err := s.files.Path(name)
	if err != nil {
		return "", err
	}
	if err := doc.SaveTo(path); err != nil {
		return "", fmt.Errorf("save attestation: %w", err)
	}
	return name, nil
}
