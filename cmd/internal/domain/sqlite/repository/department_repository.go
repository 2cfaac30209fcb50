package repository

import (
	"errors"

	"gorm.io/gorm"

	"hms/cmd/internal/domain/entity"
)

type DefaultDepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DefaultDepartmentRepository {
	return &DefaultDepartmentRepository{db: db}
}

func (r *DefaultDepartmentRepository) FindByID(id int) (*entity.Department, error) {
	var dept entity.Department
	err := r.db.First(&dept, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &dept, err
}

func (r *DefaultDepartmentRepository) FindAll() ([]*entity.Department, error) {
	var depts []*entity.Department
	err := r.db.Order("name asc").Find(&depts).Error
	return depts, err
}

func (r *DefaultDepartmentRepository) Save(dept *entity.Department) error {
	return r.db.Save(dept).Error
}
