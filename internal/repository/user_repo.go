package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/parisxmas/formdesk/internal/models"
)

type UserRepo struct {
	gdb *gorm.DB
}

func NewUserRepo(gdb *gorm.DB) *UserRepo {
	return &UserRepo{gdb: gdb}
}

// FindByEmail returns (nil, nil) when no account carries the address.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.gdb.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var u models.User
	err := r.gdb.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *models.User) error {
	return r.gdb.Create(u).Error
}
