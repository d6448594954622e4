package model

import "time"

// MensalidadeStatus é a situação de uma mensalidade
type MensalidadeStatus string

const (
	MensalidadePendente  MensalidadeStatus = "pendente"
	MensalidadePaga      MensalidadeStatus = "paga"
	MensalidadeAtrasada  MensalidadeStatus = "atrasada"
	MensalidadeCancelada MensalidadeStatus = "cancelada"
)

// Mensalidade é a cobrança de um mês de uma matrícula
type Mensalidade struct {
	ID             int64             `gorm:"primaryKey" json:"id"`
	MatriculaID    int64             `gorm:"not null;index" json:"matriculaId"`
	MesReferencia  Date              `gorm:"not null" json:"mesReferencia"` // primeiro dia do mês
	ValorOriginal  int64             `gorm:"not null" json:"valorOriginal"`
	ValorPago      int64             `gorm:"not null" json:"valorPago"`
	DataVencimento Date              `gorm:"not null" json:"dataVencimento"`
	DataPagamento  *time.Time        `json:"dataPagamento"`
	Status         MensalidadeStatus `gorm:"size:10;not null;index" json:"status"`
	FormaPagamento *string           `gorm:"size:50" json:"formaPagamento"`
	Observacoes    *string           `json:"observacoes"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Mensalidade) TableName() string {
	return "mensalidades"
}

// FirstOfMonth devolve o primeiro dia do mês de d
func FirstOfMonth(d Date) Date {
	t := d.Time()
	return NewDate(t.Year(), t.Month(), 1)
}

// MensalidadeInput é a entrada de mensalidades.create
type MensalidadeInput struct {
	MatriculaID    int64   `json:"matriculaId" validate:"required,min=1"`
	MesReferencia  *Date   `json:"mesReferencia" validate:"required"`
	ValorOriginal  *int64  `json:"valorOriginal" validate:"required,min=0"`
	DataVencimento *Date   `json:"dataVencimento" validate:"required"`
	Observacoes    *string `json:"observacoes"`
}

// Entity converte a entrada em uma mensalidade pendente
func (in MensalidadeInput) Entity() *Mensalidade {
	return &Mensalidade{
		MatriculaID:    in.MatriculaID,
		MesReferencia:  FirstOfMonth(*in.MesReferencia),
		ValorOriginal:  *in.ValorOriginal,
		DataVencimento: *in.DataVencimento,
		Status:         MensalidadePendente,
		Observacoes:    in.Observacoes,
	}
}

// MensalidadePatch é a alteração parcial de mensalidades.update
type MensalidadePatch struct {
	ValorPago      *int64             `json:"valorPago" column:"valor_pago" validate:"omitempty,min=0"`
	DataPagamento  *Timestamp         `json:"dataPagamento" column:"data_pagamento"`
	Status         *MensalidadeStatus `json:"status" column:"status" validate:"omitempty,oneof=pendente paga atrasada cancelada"`
	FormaPagamento *string            `json:"formaPagamento" column:"forma_pagamento" validate:"omitempty,max=50"`
	Observacoes    *string            `json:"observacoes" column:"observacoes"`
}

// GerarLoteInput é a entrada de mensalidades.gerarLote
type GerarLoteInput struct {
	MesReferencia *Date `json:"mesReferencia" validate:"required"`
}

// LoteResultado resume a geração de mensalidades de um mês
type LoteResultado struct {
	MesReferencia Date  `json:"mesReferencia"`
	Criadas       int   `json:"criadas"`
	Ignoradas     int   `json:"ignoradas"`
	Atrasadas     int64 `json:"atrasadas"`
}
