package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository[T any] struct {
	DB *gorm.DB
}

// Save inserts the entity. Loaded associations are never written through.
func (repo Repository[T]) Save(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (repo Repository[T]) Update(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

func (repo Repository[T]) Delete(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Delete(entity).Error
}

func (repo Repository[T]) FindById(ctx context.Context, id uint) (*T, error) {
	return first[T](repo.DB.WithContext(ctx).Where("id = ?", id))
}

func (repo Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	err := repo.DB.WithContext(ctx).Order("id ASC").Find(&entities).Error
	return entities, err
}

// first runs Take on the query and maps a missing row to (nil, nil).
func first[T any](query *gorm.DB) (*T, error) {
	var entity T
	err := query.Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
