package model

import "time"

// Depoimento é uma avaliação pública, exibida somente depois de aprovada
type Depoimento struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Nome       string    `gorm:"size:255;not null" json:"nome"`
	FotoURL    *string   `json:"fotoUrl"`
	Modalidade *string   `gorm:"size:100" json:"modalidade"`
	Avaliacao  int       `gorm:"not null" json:"avaliacao"` // 1 a 5
	Depoimento string    `gorm:"not null" json:"depoimento"`
	Aprovado   bool      `gorm:"not null;index" json:"aprovado"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Depoimento) TableName() string {
	return "depoimentos"
}

// DepoimentoInput é a entrada pública de depoimentos.create
type DepoimentoInput struct {
	Nome       string  `json:"nome" validate:"required,max=255"`
	FotoURL    *string `json:"fotoUrl"`
	Modalidade *string `json:"modalidade" validate:"omitempty,max=100"`
	Avaliacao  int     `json:"avaliacao" validate:"min=1,max=5"`
	Depoimento string  `json:"depoimento" validate:"required,max=5000"`
}

// Entity converte a entrada em um depoimento aguardando aprovação
func (in DepoimentoInput) Entity() *Depoimento {
	return &Depoimento{
		Nome:       in.Nome,
		FotoURL:    in.FotoURL,
		Modalidade: in.Modalidade,
		Avaliacao:  in.Avaliacao,
		Depoimento: in.Depoimento,
	}
}

// DepoimentoPatch é a alteração parcial de depoimentos.update
type DepoimentoPatch struct {
	Aprovado *bool `json:"aprovado" column:"aprovado"`
}
