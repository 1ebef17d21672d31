package favorite

import (
	"context"
	"errors"

	"mapa-saude-api/internal/establishment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEstablishmentNotFound = errors.New("estabelecimento não encontrado")

type ServiceAPI interface {
	Add(ctx context.Context, usuarioID, estabelecimentoID int) error
	Remove(ctx context.Context, usuarioID, estabelecimentoID int) error
	List(ctx context.Context, usuarioID int) ([]establishment.Establishment, error)
	IsFavorite(ctx context.Context, usuarioID, estabelecimentoID int) (bool, error)
}

type Service struct {
	DB *gorm.DB
}

// Add marks an establishment as a favorite. Duplicate adds are no-ops; the
// conflict on the composite key is simply ignored.
func (s *Service) Add(ctx context.Context, usuarioID, estabelecimentoID int) error {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&establishment.Establishment{}).
		Where("id = ? AND ativo = ?", estabelecimentoID, true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEstablishmentNotFound
	}

	fav := Favorite{UsuarioID: usuarioID, EstabelecimentoID: estabelecimentoID}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

func (s *Service) Remove(ctx context.Context, usuarioID, estabelecimentoID int) error {
	return s.DB.WithContext(ctx).
		Where("usuario_id = ? AND estabelecimento_id = ?", usuarioID, estabelecimentoID).
		Delete(&Favorite{}).Error
}

// List returns the user's favorited establishments, oldest favorite first.
func (s *Service) List(ctx context.Context, usuarioID int) ([]establishment.Establishment, error) {
	var out []establishment.Establishment
	err := s.DB.WithContext(ctx).
		Model(&establishment.Establishment{}).
		Joins("JOIN favoritos f ON f.estabelecimento_id = estabelecimentos.id").
		Where("f.usuario_id = ?", usuarioID).
		Order("estabelecimentos.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) IsFavorite(ctx context.Context, usuarioID, estabelecimentoID int) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&Favorite{}).
		Where("usuario_id = ? AND estabelecimento_id = ?", usuarioID, estabelecimentoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
