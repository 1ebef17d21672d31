package doctor

import (
	"context"
	"errors"
	"strings"

	"mapa-saude-api/internal/util"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("médico não encontrado")
	ErrDuplicateCRM = errors.New("CRM já cadastrado")
	ErrValidation   = errors.New("dados do médico inválidos")
)

const searchLimit = 100

type Service struct {
	DB *gorm.DB
}

// SearchDoctors lists active doctors matching the given filters, ordered by
// name. Free-text search covers name, biography and the specialty list.
func (s *Service) SearchDoctors(ctx context.Context, f Filters) ([]Doctor, error) {
	q := s.DB.WithContext(ctx).Model(&Doctor{}).Where("ativo = ?", true)

	if term := strings.TrimSpace(f.Search); term != "" {
		pat := "%" + term + "%"
		q = q.Where("(nome ILIKE ? OR biografia ILIKE ? OR ? = ANY(especialidades))", pat, pat, term)
	}
	if esp := strings.TrimSpace(f.Especialidade); esp != "" {
		q = q.Where("? = ANY(especialidades)", esp)
	}
	if conv := strings.TrimSpace(f.Convenio); conv != "" {
		q = q.Where("? = ANY(convenios_aceitos)", conv)
	}
	if f.EstabelecimentoID > 0 {
		q = q.Where(
			"id IN (SELECT medico_id FROM medico_estabelecimentos WHERE estabelecimento_id = ?)",
			f.EstabelecimentoID,
		)
	}

	var doctors []Doctor
	if err := q.Order("nome ASC").Limit(searchLimit).Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetByID returns a doctor (active or not, for audit) together with the ids
// of the establishments the doctor is linked to.
func (s *Service) GetByID(ctx context.Context, id int) (*Doctor, []int, error) {
	var doc Doctor
	if err := s.DB.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var estIDs []int
	err := s.DB.WithContext(ctx).
		Model(&EstablishmentLink{}).
		Where("medico_id = ?", id).
		Order("estabelecimento_id ASC").
		Pluck("estabelecimento_id", &estIDs).Error
	if err != nil {
		return nil, nil, err
	}
	return &doc, estIDs, nil
}

// ListActiveByEstablishment returns the active roster of one establishment.
func (s *Service) ListActiveByEstablishment(ctx context.Context, estabelecimentoID int) ([]Doctor, error) {
	var doctors []Doctor
	err := s.DB.WithContext(ctx).
		Joins("JOIN medico_estabelecimentos me ON me.medico_id = medicos.id").
		Where("me.estabelecimento_id = ? AND medicos.ativo = ?", estabelecimentoID, true).
		Order("medicos.nome ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// CreateForEstablishment registers a new doctor and links it to the
// establishment in a single transaction. CRM numbers are globally unique
// across active and deactivated doctors.
func (s *Service) CreateForEstablishment(ctx context.Context, estabelecimentoID int, in CreateInput) (*Doctor, error) {
	if !util.IsValidCRM(in.CRM) {
		return nil, ErrValidation
	}
	if in.Telefone != "" && !util.IsValidPhone(in.Telefone) {
		return nil, ErrValidation
	}

	doc := Doctor{
		Nome:             strings.TrimSpace(in.Nome),
		CRM:              strings.TrimSpace(in.CRM),
		Especialidades:   pq.StringArray(in.Especialidades),
		ConveniosAceitos: pq.StringArray(in.ConveniosAceitos),
		Biografia:        strings.TrimSpace(in.Biografia),
		Telefone:         in.Telefone,
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		Ativo:            true,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Doctor{}).Where("crm = ?", doc.CRM).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCRM
		}
		if err := tx.Create(&doc).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") {
				return ErrDuplicateCRM
			}
			return err
		}
		link := EstablishmentLink{MedicoID: doc.ID, EstabelecimentoID: estabelecimentoID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateForEstablishment applies a partial update to a doctor on the given
// establishment's roster. Unset fields keep their prior value. The CRM is
// immutable after registration.
func (s *Service) UpdateForEstablishment(ctx context.Context, estabelecimentoID, medicoID int, in UpdateInput) (*Doctor, error) {
	if in.Telefone != "" && !util.IsValidPhone(in.Telefone) {
		return nil, ErrValidation
	}

	doc, err := s.findOnRoster(ctx, estabelecimentoID, medicoID)
	if err != nil {
		return nil, err
	}

	if nome := strings.TrimSpace(in.Nome); nome != "" {
		doc.Nome = nome
	}
	if len(in.Especialidades) > 0 {
		doc.Especialidades = pq.StringArray(in.Especialidades)
	}
	if len(in.ConveniosAceitos) > 0 {
		doc.ConveniosAceitos = pq.StringArray(in.ConveniosAceitos)
	}
	if bio := strings.TrimSpace(in.Biografia); bio != "" {
		doc.Biografia = bio
	}
	if in.Telefone != "" {
		doc.Telefone = in.Telefone
	}
	if in.Email != "" {
		doc.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}

	if err := s.DB.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// DeactivateForEstablishment soft-deletes a doctor on the establishment's
// roster. The row and the roster links survive for audit.
func (s *Service) DeactivateForEstablishment(ctx context.Context, estabelecimentoID, medicoID int) error {
	doc, err := s.findOnRoster(ctx, estabelecimentoID, medicoID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Model(&Doctor{}).
		Where("id = ?", doc.ID).
		Update("ativo", false).Error
}

func (s *Service) findOnRoster(ctx context.Context, estabelecimentoID, medicoID int) (*Doctor, error) {
	var doc Doctor
	err := s.DB.WithContext(ctx).
		Joins("JOIN medico_estabelecimentos me ON me.medico_id = medicos.id").
		Where("medicos.id = ? AND me.estabelecimento_id = ? AND medicos.ativo = ?", medicoID, estabelecimentoID, true).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}
