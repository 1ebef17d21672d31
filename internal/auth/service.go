package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"mapa-saude-api/internal/establishment"
	"mapa-saude-api/internal/util"
	"mapa-saude-api/pkg/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrAccountDisabled    = errors.New("conta desativada")
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrInvalidRole        = errors.New("tipo de usuário inválido")
	ErrUserNotFound       = errors.New("usuário não encontrado")
)

type Service struct {
	DB  *gorm.DB
	Geo Geocoder
}

// Register creates a user and, for establishment-managing roles, the
// establishment profile plus the user link in the same transaction: either
// all rows land or none do.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if !ValidRole(req.Tipo) {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := util.HashPassword(req.Senha)
	if err != nil {
		return nil, err
	}

	user := User{
		Nome:  strings.TrimSpace(req.Nome),
		Email: email,
		Senha: hashed,
		Tipo:  req.Tipo,
		Ativo: true,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") {
				return ErrEmailTaken
			}
			return err
		}

		if !ManagesEstablishment(req.Tipo) {
			return nil
		}

		est := establishment.Establishment{
			Nome:                 user.Nome,
			Tipo:                 req.Tipo,
			EnderecoCompleto:     strings.TrimSpace(req.EnderecoCompleto),
			Telefone:             req.Telefone,
			HorarioFuncionamento: strings.TrimSpace(req.HorarioFuncionamento),
			ConveniosGerais:      pq.StringArray(req.ConveniosGerais),
			AdminID:              user.ID,
			Ativo:                true,
		}
		if cnpj := strings.TrimSpace(req.CNPJ); cnpj != "" {
			est.CNPJ = &cnpj
		}
		s.geocodeInto(ctx, &est)

		if err := tx.Create(&est).Error; err != nil {
			return err
		}
		return tx.Model(&User{}).
			Where("id = ?", user.ID).
			Update("estabelecimento_id", est.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials against the stored hash, rejects deactivated
// accounts and stamps the last-login time.
func (s *Service) Login(ctx context.Context, email, senha string) (*User, error) {
	var user User
	err := s.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := util.VerifyPassword(senha, user.Senha); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Ativo {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	user.UltimoLogin = &now
	if err := s.DB.WithContext(ctx).Model(&User{}).
		Where("id = ?", user.ID).
		Update("ultimo_login", now).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*User, error) {
	var user User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) geocodeInto(ctx context.Context, est *establishment.Establishment) {
	if s.Geo == nil || strings.TrimSpace(est.EnderecoCompleto) == "" {
		return
	}
	lat, lng, err := s.Geo.Geocode(ctx, est.EnderecoCompleto)
	if err != nil {
		logger.GetLogger().Warn("geocoding failed during registration", zap.Error(err))
		return
	}
	est.Latitude = &lat
	est.Longitude = &lng
}
