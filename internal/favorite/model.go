package favorite

import "time"

// Favorite relates a user to an establishment. The composite key makes
// membership idempotent: re-adding is a no-op.
type Favorite struct {
	UsuarioID         int       `gorm:"primaryKey;column:usuario_id" json:"usuario_id"`
	EstabelecimentoID int       `gorm:"primaryKey;column:estabelecimento_id" json:"estabelecimento_id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favoritos"
}
