package model

import "time"

// AgendamentoStatus segue pendente → confirmado → realizado, com cancelado a partir de qualquer estado.
// As transições não são verificadas.
type AgendamentoStatus string

const (
	AgendamentoPendente   AgendamentoStatus = "pendente"
	AgendamentoConfirmado AgendamentoStatus = "confirmado"
	AgendamentoRealizado  AgendamentoStatus = "realizado"
	AgendamentoCancelado  AgendamentoStatus = "cancelado"
)

// Agendamento é o pedido de aula experimental feito por um visitante
type Agendamento struct {
	ID                 int64             `gorm:"primaryKey" json:"id"`
	Nome               string            `gorm:"size:255;not null" json:"nome"`
	Email              string            `gorm:"size:320;not null" json:"email"`
	Telefone           *string           `gorm:"size:20" json:"telefone"`
	Modalidade         string            `gorm:"size:100;not null" json:"modalidade"`
	DataPreferencia    Date              `gorm:"not null" json:"dataPreferencia"`
	HorarioPreferencia *string           `gorm:"size:50" json:"horarioPreferencia"`
	Idade              *int              `json:"idade"`
	Mensagem           *string           `json:"mensagem"`
	Status             AgendamentoStatus `gorm:"size:10;not null;index" json:"status"`
	DataConfirmacao    *time.Time        `json:"dataConfirmacao"`
	Observacoes        *string           `json:"observacoes"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Agendamento) TableName() string {
	return "agendamentos"
}

// AgendamentoInput é a entrada pública de agendamentos.create
type AgendamentoInput struct {
	Nome               string  `json:"nome" validate:"required,max=255"`
	Email              string  `json:"email" validate:"required,email"`
	Telefone           *string `json:"telefone" validate:"omitempty,max=20"`
	Modalidade         string  `json:"modalidade" validate:"required,max=100"`
	DataPreferencia    *Date   `json:"dataPreferencia" validate:"required"`
	HorarioPreferencia *string `json:"horarioPreferencia" validate:"omitempty,max=50"`
	Idade              *int    `json:"idade" validate:"omitempty,min=1,max=120"`
	Mensagem           *string `json:"mensagem" validate:"omitempty,max=2000"`
}

// Entity converte a entrada em um agendamento pendente
func (in AgendamentoInput) Entity() *Agendamento {
	return &Agendamento{
		Nome:               in.Nome,
		Email:              in.Email,
		Telefone:           in.Telefone,
		Modalidade:         in.Modalidade,
		DataPreferencia:    *in.DataPreferencia,
		HorarioPreferencia: in.HorarioPreferencia,
		Idade:              in.Idade,
		Mensagem:           in.Mensagem,
		Status:             AgendamentoPendente,
	}
}

// AgendamentoPatch é a alteração parcial de agendamentos.update
type AgendamentoPatch struct {
	Status          *AgendamentoStatus `json:"status" column:"status" validate:"omitempty,oneof=pendente confirmado realizado cancelado"`
	DataConfirmacao *Timestamp         `json:"dataConfirmacao" column:"data_confirmacao"`
	Observacoes     *string            `json:"observacoes" column:"observacoes"`
}
