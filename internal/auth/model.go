package auth

import "time"

const (
	RolePaciente     = "paciente"
	RoleClinica      = "clinica"
	RoleOrgaoPublico = "orgao_publico"
)

func ValidRole(s string) bool {
	return s == RolePaciente || s == RoleClinica || s == RoleOrgaoPublico
}

// ManagesEstablishment reports whether the role owns an establishment
// profile in the directory.
func ManagesEstablishment(role string) bool {
	return role == RoleClinica || role == RoleOrgaoPublico
}

type User struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome              string     `gorm:"size:100;not null;column:nome" json:"nome"`
	Email             string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Senha             string     `gorm:"not null;column:senha" json:"-"`
	Tipo              string     `gorm:"size:20;not null;column:tipo" json:"tipo"`
	EstabelecimentoID *int       `gorm:"column:estabelecimento_id" json:"estabelecimento_id,omitempty"`
	UltimoLogin       *time.Time `gorm:"column:ultimo_login" json:"ultimo_login,omitempty"`
	Ativo             bool       `gorm:"default:true;column:ativo" json:"ativo"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

type RegisterRequest struct {
	Nome                 string   `json:"nome" binding:"required,max=100"`
	Email                string   `json:"email" binding:"required,email"`
	Senha                string   `json:"senha" binding:"required,min=6"`
	Tipo                 string   `json:"tipo" binding:"required"`
	EnderecoCompleto     string   `json:"endereco_completo" binding:"omitempty,max=500"`
	Telefone             string   `json:"telefone"`
	HorarioFuncionamento string   `json:"horario_funcionamento" binding:"omitempty,max=200"`
	CNPJ                 string   `json:"cnpj"`
	ConveniosGerais      []string `json:"convenios_gerais" binding:"omitempty,dive,max=50"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}
