package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

type repositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &repositoryFactoryImpl{db: db}
}

func (f *repositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db)
}
