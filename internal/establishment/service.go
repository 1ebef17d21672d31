package establishment

import (
	"context"
	"errors"
	"math"
	"strings"

	"mapa-saude-api/internal/doctor"
	"mapa-saude-api/internal/util"
	"mapa-saude-api/pkg/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("estabelecimento não encontrado")
	ErrValidation    = errors.New("dados do estabelecimento inválidos")
	ErrInvalidRating = errors.New("dados de avaliação inválidos")
	ErrAlreadyActive = errors.New("administrador já possui um estabelecimento ativo")
)

type SaveInput struct {
	Nome                 string   `json:"nome" binding:"omitempty,max=200"`
	CNPJ                 string   `json:"cnpj"`
	EnderecoCompleto     string   `json:"endereco_completo" binding:"omitempty,max=500"`
	Telefone             string   `json:"telefone"`
	HorarioFuncionamento string   `json:"horario_funcionamento" binding:"omitempty,max=200"`
	Descricao            string   `json:"descricao" binding:"omitempty,max=1000"`
	Site                 string   `json:"site"`
	ConveniosGerais      []string `json:"convenios_gerais" binding:"omitempty,dive,max=50"`
}

type ReviewInput struct {
	Usuario    string `json:"usuario" binding:"required,max=100"`
	Nota       int    `json:"nota" binding:"required"`
	Comentario string `json:"comentario" binding:"omitempty,max=500"`
}

// Detail is the public single-establishment view: the record itself plus its
// active roster and the derived average rating (one decimal, 0 when no
// reviews exist).
type Detail struct {
	Establishment
	NotaMedia float64         `json:"nota_media"`
	Medicos   []doctor.Doctor `json:"medicos"`
}

type Service struct {
	DB     *gorm.DB
	Geo    Geocoder
	Roster Roster
}

// GetByID fetches one establishment regardless of its lifecycle state, so
// deactivated records remain reachable for audit.
func (s *Service) GetByID(ctx context.Context, id int) (*Establishment, error) {
	var est Establishment
	if err := s.DB.WithContext(ctx).First(&est, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &est, nil
}

func (s *Service) GetDetail(ctx context.Context, id int) (*Detail, error) {
	est, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doctors, err := s.Roster.ListActiveByEstablishment(ctx, est.ID)
	if err != nil {
		return nil, err
	}

	avg, err := s.averageRating(ctx, est.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Establishment: *est, NotaMedia: avg, Medicos: doctors}, nil
}

// ActiveByAdmin returns the one active establishment managed by adminID.
func (s *Service) ActiveByAdmin(ctx context.Context, adminID int) (*Establishment, error) {
	var est Establishment
	err := s.DB.WithContext(ctx).
		Where("admin_id = ? AND ativo = ?", adminID, true).
		First(&est).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &est, nil
}

func (s *Service) ActiveIDByAdmin(ctx context.Context, adminID int) (int, error) {
	est, err := s.ActiveByAdmin(ctx, adminID)
	if err != nil {
		return 0, err
	}
	return est.ID, nil
}

// SaveForAdmin creates the administrator's establishment on first save and
// partially updates it afterwards: fields left unset keep their prior value.
// The address is geocoded on every save that carries one; a geocoding failure
// is logged and swallowed, never blocking the save.
func (s *Service) SaveForAdmin(ctx context.Context, adminID int, tipo string, in SaveInput) (*Establishment, error) {
	if err := validateSaveInput(in); err != nil {
		return nil, err
	}

	existing, err := s.ActiveByAdmin(ctx, adminID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		if !ValidTipo(tipo) {
			return nil, ErrValidation
		}
		if strings.TrimSpace(in.Nome) == "" ||
			strings.TrimSpace(in.EnderecoCompleto) == "" ||
			strings.TrimSpace(in.Telefone) == "" ||
			strings.TrimSpace(in.HorarioFuncionamento) == "" {
			return nil, ErrValidation
		}

		est := Establishment{
			Nome:                 strings.TrimSpace(in.Nome),
			Tipo:                 tipo,
			EnderecoCompleto:     strings.TrimSpace(in.EnderecoCompleto),
			Telefone:             in.Telefone,
			HorarioFuncionamento: strings.TrimSpace(in.HorarioFuncionamento),
			Descricao:            strings.TrimSpace(in.Descricao),
			Site:                 strings.TrimSpace(in.Site),
			ConveniosGerais:      pq.StringArray(in.ConveniosGerais),
			AdminID:              adminID,
			Ativo:                true,
		}
		if cnpj := strings.TrimSpace(in.CNPJ); cnpj != "" {
			est.CNPJ = &cnpj
		}
		s.geocodeInto(ctx, &est)

		if err := s.DB.WithContext(ctx).Create(&est).Error; err != nil {
			return nil, err
		}
		return &est, nil
	}

	if nome := strings.TrimSpace(in.Nome); nome != "" {
		existing.Nome = nome
	}
	if cnpj := strings.TrimSpace(in.CNPJ); cnpj != "" {
		existing.CNPJ = &cnpj
	}
	addressChanged := false
	if addr := strings.TrimSpace(in.EnderecoCompleto); addr != "" && addr != existing.EnderecoCompleto {
		existing.EnderecoCompleto = addr
		addressChanged = true
	}
	if in.Telefone != "" {
		existing.Telefone = in.Telefone
	}
	if h := strings.TrimSpace(in.HorarioFuncionamento); h != "" {
		existing.HorarioFuncionamento = h
	}
	if d := strings.TrimSpace(in.Descricao); d != "" {
		existing.Descricao = d
	}
	if site := strings.TrimSpace(in.Site); site != "" {
		existing.Site = site
	}
	if len(in.ConveniosGerais) > 0 {
		existing.ConveniosGerais = pq.StringArray(in.ConveniosGerais)
	}
	if addressChanged {
		s.geocodeInto(ctx, existing)
	}

	if err := s.DB.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// DeactivateByAdmin soft-deletes the administrator's establishment. The row
// survives and stays reachable by id.
func (s *Service) DeactivateByAdmin(ctx context.Context, adminID int) error {
	est, err := s.ActiveByAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Model(&Establishment{}).
		Where("id = ?", est.ID).
		Update("ativo", false).Error
}

// AddReview records a rating for an establishment. Ratings are integers 1-5.
func (s *Service) AddReview(ctx context.Context, estabelecimentoID int, in ReviewInput) error {
	if strings.TrimSpace(in.Usuario) == "" || in.Nota < 1 || in.Nota > 5 {
		return ErrInvalidRating
	}

	if _, err := s.GetByID(ctx, estabelecimentoID); err != nil {
		return err
	}

	review := Review{
		EstabelecimentoID: estabelecimentoID,
		UsuarioNome:       strings.TrimSpace(in.Usuario),
		Nota:              in.Nota,
		Comentario:        strings.TrimSpace(in.Comentario),
	}
	return s.DB.WithContext(ctx).Create(&review).Error
}

func (s *Service) averageRating(ctx context.Context, estabelecimentoID int) (float64, error) {
	var avg float64
	err := s.DB.WithContext(ctx).
		Model(&Review{}).
		Where("estabelecimento_id = ?", estabelecimentoID).
		Select("COALESCE(AVG(nota), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return math.Round(avg*10) / 10, nil
}

func (s *Service) geocodeInto(ctx context.Context, est *Establishment) {
	if s.Geo == nil || strings.TrimSpace(est.EnderecoCompleto) == "" {
		return
	}
	lat, lng, err := s.Geo.Geocode(ctx, est.EnderecoCompleto)
	if err != nil {
		logger.GetLogger().Warn("geocoding failed, keeping position unset",
			zap.Int("estabelecimento_id", est.ID),
			zap.Error(err))
		return
	}
	est.Latitude = &lat
	est.Longitude = &lng
}

func validateSaveInput(in SaveInput) error {
	if cnpj := strings.TrimSpace(in.CNPJ); cnpj != "" && !util.IsValidCNPJ(cnpj) {
		return ErrValidation
	}
	if in.Telefone != "" && !util.IsValidPhone(in.Telefone) {
		return ErrValidation
	}
	if site := strings.TrimSpace(in.Site); site != "" && !util.IsValidURL(site) {
		return ErrValidation
	}
	return nil
}
