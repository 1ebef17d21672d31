package doctor

import (
	"time"

	"github.com/lib/pq"
)

type Doctor struct {
	ID               int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome             string         `gorm:"size:100;not null;column:nome" json:"nome"`
	CRM              string         `gorm:"size:20;uniqueIndex;not null;column:crm" json:"crm"`
	Especialidades   pq.StringArray `gorm:"type:text[];not null;column:especialidades" json:"especialidades"`
	ConveniosAceitos pq.StringArray `gorm:"type:text[];column:convenios_aceitos" json:"convenios_aceitos"`
	Biografia        string         `gorm:"size:1000;column:biografia" json:"biografia,omitempty"`
	Telefone         string         `gorm:"size:20;column:telefone" json:"telefone,omitempty"`
	Email            string         `gorm:"size:100;column:email" json:"email,omitempty"`
	Ativo            bool           `gorm:"default:true;column:ativo" json:"ativo"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Doctor) TableName() string {
	return "medicos"
}

// EstablishmentLink relates a doctor to one of the establishments they
// practice at. A doctor may be on the roster of several establishments.
type EstablishmentLink struct {
	MedicoID          int `gorm:"primaryKey;column:medico_id" json:"medico_id"`
	EstabelecimentoID int `gorm:"primaryKey;column:estabelecimento_id" json:"estabelecimento_id"`
}

func (EstablishmentLink) TableName() string {
	return "medico_estabelecimentos"
}

type CreateInput struct {
	Nome             string   `json:"nome" binding:"required,max=100"`
	CRM              string   `json:"crm" binding:"required,max=20"`
	Especialidades   []string `json:"especialidades" binding:"required,min=1,dive,max=50"`
	ConveniosAceitos []string `json:"convenios_aceitos" binding:"omitempty,dive,max=50"`
	Biografia        string   `json:"biografia" binding:"omitempty,max=1000"`
	Telefone         string   `json:"telefone"`
	Email            string   `json:"email" binding:"omitempty,email"`
}

type UpdateInput struct {
	Nome             string   `json:"nome" binding:"omitempty,max=100"`
	Especialidades   []string `json:"especialidades" binding:"omitempty,dive,max=50"`
	ConveniosAceitos []string `json:"convenios_aceitos" binding:"omitempty,dive,max=50"`
	Biografia        string   `json:"biografia" binding:"omitempty,max=1000"`
	Telefone         string   `json:"telefone"`
	Email            string   `json:"email" binding:"omitempty,email"`
}

type Filters struct {
	Search            string
	Especialidade     string
	Convenio          string
	EstabelecimentoID int
}
