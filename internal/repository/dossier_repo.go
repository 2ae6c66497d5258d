package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/parisxmas/formdesk/internal/models"
)

// FilterAll is the sentinel filter value returning every dossier.
const FilterAll = "Tous"

// ErrNotFound is returned when a dossier id matches no row.
var ErrNotFound = errors.New("dossier not found")

type DossierRepo struct {
	gdb *gorm.DB
}

func NewDossierRepo(gdb *gorm.DB) *DossierRepo {
	return &DossierRepo{gdb: gdb}
}

// FindAll returns dossiers, optionally restricted to one CNAPS status.
func (r *DossierRepo) FindAll(filtreCNAPS string) ([]models.Dossier, error) {
	var dossiers []models.Dossier
	q := r.gdb.Order("id")
	if filtreCNAPS != "" && filtreCNAPS != FilterAll {
		q = q.Where("statut_cnaps = ?", filtreCNAPS)
	}
	if err := q.Find(&dossiers).Error; err != nil {
		return nil, err
	}
	return dossiers, nil
}

// DistinctStatutsCNAPS returns the sorted set of non-empty CNAPS statuses,
// used to populate the admin filter control.
func (r *DossierRepo) DistinctStatutsCNAPS() ([]string, error) {
	var statuts []string
	err := r.gdb.Model(&models.Dossier{}).
		Distinct().
		Where("statut_cnaps <> ''").
		Order("statut_cnaps").
		Pluck("statut_cnaps", &statuts).Error
	if err != nil {
		return nil, err
	}
	return statuts, nil
}

func (r *DossierRepo) FindByID(id uint) (*models.Dossier, error) {
	var d models.Dossier
	err := r.gdb.First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DossierRepo) Create(d *models.Dossier) error {
	return r.gdb.Create(d).Error
}

// UpdateField sets exactly one column on exactly one dossier.
// column must be one of the admin-mutable columns; anything else is
// rejected before touching the store.
func (r *DossierRepo) UpdateField(id uint, column, value string) error {
	switch column {
	case "statut", "statut_cnaps", "commentaire":
	default:
		return errors.New("column not mutable: " + column)
	}
	res := r.gdb.Model(&models.Dossier{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DossierRepo) Delete(id uint) error {
	res := r.gdb.Delete(&models.Dossier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DossierRepo) Count() (int64, error) {
	var n int64
	err := r.gdb.Model(&models.Dossier{}).Count(&n).Error
	return n, err
}
