package models

// Dossier is one administrative case file tracked through review.
// Rows are seeded outside the public surface; the admin side only
// mutates status fields, comments them, or removes them.
type Dossier struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom         string `gorm:"size:255;not null" json:"nom"`
	Prenom      string `gorm:"size:255;not null" json:"prenom"`
	Formation   string `gorm:"size:255" json:"formation"`
	Session     string `gorm:"size:255" json:"session"`
	Statut      string `gorm:"size:255" json:"statut"`
	StatutCNAPS string `gorm:"column:statut_cnaps;size:255" json:"statut_cnaps"`
	Commentaire string `json:"commentaire"`
}

func (Dossier) TableName() string { return "dossiers" }
