package establishment

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	TipoClinica      = "clinica"
	TipoOrgaoPublico = "orgao_publico"
)

// ValidTipo reports whether s is one of the two known establishment type tags.
func ValidTipo(s string) bool {
	return s == TipoClinica || s == TipoOrgaoPublico
}

type Establishment struct {
	ID                   int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome                 string         `gorm:"size:200;not null;column:nome" json:"nome"`
	CNPJ                 *string        `gorm:"size:18;column:cnpj" json:"cnpj,omitempty"`
	Tipo                 string         `gorm:"size:20;not null;column:tipo" json:"tipo"`
	EnderecoCompleto     string         `gorm:"size:500;not null;column:endereco_completo" json:"endereco_completo"`
	Telefone             string         `gorm:"size:20;not null;column:telefone" json:"telefone"`
	HorarioFuncionamento string         `gorm:"size:200;not null;column:horario_funcionamento" json:"horario_funcionamento"`
	Descricao            string         `gorm:"size:1000;column:descricao" json:"descricao,omitempty"`
	Site                 string         `gorm:"size:255;column:site" json:"site,omitempty"`
	ConveniosGerais      pq.StringArray `gorm:"type:text[];column:convenios_gerais" json:"convenios_gerais"`
	Latitude             *float64       `gorm:"column:latitude" json:"latitude"`
	Longitude            *float64       `gorm:"column:longitude" json:"longitude"`
	Fotos                datatypes.JSON `gorm:"type:jsonb;column:fotos" json:"fotos,omitempty"`
	AdminID              int            `gorm:"not null;index;column:admin_id" json:"admin_id"`
	Ativo                bool           `gorm:"default:true;column:ativo" json:"ativo"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (Establishment) TableName() string {
	return "estabelecimentos"
}

type Review struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	EstabelecimentoID int       `gorm:"not null;index;column:estabelecimento_id" json:"estabelecimento_id"`
	UsuarioNome       string    `gorm:"size:100;not null;column:usuario_nome" json:"usuario_nome"`
	Nota              int       `gorm:"not null;column:nota" json:"nota"`
	Comentario        string    `gorm:"size:500;column:comentario" json:"comentario,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "avaliacoes"
}
