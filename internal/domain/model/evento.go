package model

import "time"

// EventoTipo é o tipo de um evento
type EventoTipo string

const (
	EventoFestival     EventoTipo = "festival"
	EventoCompeticao   EventoTipo = "competicao"
	EventoApresentacao EventoTipo = "apresentacao"
	EventoWorkshop     EventoTipo = "workshop"
)

// Evento é um festival, competição, apresentação ou workshop.
// ValorInscricao é armazenado e devolvido em centavos.
type Evento struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	Titulo            string     `gorm:"size:255;not null" json:"titulo"`
	Descricao         *string    `json:"descricao"`
	Tipo              EventoTipo `gorm:"size:15;not null" json:"tipo"`
	DataEvento        time.Time  `gorm:"not null" json:"dataEvento"`
	Local             *string    `gorm:"size:255" json:"local"`
	Endereco          *string    `json:"endereco"`
	ValorInscricao    int64      `gorm:"not null" json:"valorInscricao"`
	VagasTotal        *int       `json:"vagasTotal"` // nil = sem limite
	VagasOcupadas     int        `gorm:"not null" json:"vagasOcupadas"`
	ImagemURL         *string    `json:"imagemUrl"`
	InscricoesAbertas bool       `gorm:"not null" json:"inscricoesAbertas"`
	Ativo             bool       `gorm:"not null;index" json:"ativo"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Evento) TableName() string {
	return "eventos"
}

// EventoInput é a entrada de eventos.create. ValorInscricao vem em reais.
type EventoInput struct {
	Titulo         string     `json:"titulo" validate:"required,max=255"`
	Descricao      *string    `json:"descricao"`
	Tipo           EventoTipo `json:"tipo" validate:"required,oneof=festival competicao apresentacao workshop"`
	DataEvento     *Timestamp `json:"dataEvento" validate:"required"`
	Local          *string    `json:"local" validate:"omitempty,max=255"`
	Endereco       *string    `json:"endereco"`
	ValorInscricao *float64   `json:"valorInscricao" validate:"required,min=0"`
	VagasTotal     *int       `json:"vagasTotal" validate:"omitempty,min=0"`
	ImagemURL      *string    `json:"imagemUrl"`
}

// Entity converte a entrada em um evento ativo com inscrições abertas
func (in EventoInput) Entity(valorInscricaoCentavos int64) *Evento {
	return &Evento{
		Titulo:            in.Titulo,
		Descricao:         in.Descricao,
		Tipo:              in.Tipo,
		DataEvento:        in.DataEvento.Time,
		Local:             in.Local,
		Endereco:          in.Endereco,
		ValorInscricao:    valorInscricaoCentavos,
		VagasTotal:        in.VagasTotal,
		ImagemURL:         in.ImagemURL,
		InscricoesAbertas: true,
		Ativo:             true,
	}
}

// EventoPatch é a alteração parcial de eventos.update.
// ValorInscricao vem em reais e é convertido fora de Changes.
type EventoPatch struct {
	Titulo            *string     `json:"titulo" column:"titulo" validate:"omitempty,max=255"`
	Descricao         *string     `json:"descricao" column:"descricao"`
	Tipo              *EventoTipo `json:"tipo" column:"tipo" validate:"omitempty,oneof=festival competicao apresentacao workshop"`
	DataEvento        *Timestamp  `json:"dataEvento" column:"data_evento"`
	Local             *string     `json:"local" column:"local" validate:"omitempty,max=255"`
	Endereco          *string     `json:"endereco" column:"endereco"`
	ValorInscricao    *float64    `json:"valorInscricao" validate:"omitempty,min=0"`
	VagasTotal        *int        `json:"vagasTotal" column:"vagas_total" validate:"omitempty,min=0"`
	ImagemURL         *string     `json:"imagemUrl" column:"imagem_url"`
	InscricoesAbertas *bool       `json:"inscricoesAbertas" column:"inscricoes_abertas"`
	Ativo             *bool       `json:"ativo" column:"ativo"`
}
