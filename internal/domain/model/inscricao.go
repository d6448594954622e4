package model

import "time"

// StatusPagamento é a situação de pagamento de uma inscrição
type StatusPagamento string

const (
	PagamentoPendente  StatusPagamento = "pendente"
	PagamentoPago      StatusPagamento = "pago"
	PagamentoCancelado StatusPagamento = "cancelado"
)

// InscricaoEvento é a inscrição de um participante em um evento.
// ValorPago é copiado do evento no momento da inscrição.
type InscricaoEvento struct {
	ID                   int64           `gorm:"primaryKey" json:"id"`
	EventoID             int64           `gorm:"not null;index" json:"eventoId"`
	BailarinoID          *int64          `json:"bailarinoId"`
	NomeParticipante     string          `gorm:"size:255;not null" json:"nomeParticipante"`
	EmailParticipante    string          `gorm:"size:320;not null" json:"emailParticipante"`
	TelefoneParticipante *string         `gorm:"size:20" json:"telefoneParticipante"`
	ValorPago            int64           `gorm:"not null" json:"valorPago"`
	StatusPagamento      StatusPagamento `gorm:"size:10;not null" json:"statusPagamento"`
	DataPagamento        *time.Time      `json:"dataPagamento"`
	Presente             bool            `gorm:"not null" json:"presente"`
	CertificadoEmitido   bool            `gorm:"not null" json:"certificadoEmitido"`
	Observacoes          *string         `json:"observacoes"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// TableName define o nome da tabela
func (InscricaoEvento) TableName() string {
	return "inscricoes_eventos"
}

// InscricaoInput é a entrada pública de inscricoesEventos.create
type InscricaoInput struct {
	EventoID             int64   `json:"eventoId" validate:"required,min=1"`
	NomeParticipante     string  `json:"nomeParticipante" validate:"required,max=255"`
	EmailParticipante    string  `json:"emailParticipante" validate:"required,email"`
	TelefoneParticipante *string `json:"telefoneParticipante" validate:"omitempty,max=20"`
	BailarinoID          *int64  `json:"bailarinoId" validate:"omitempty,min=1"`
}

// Entity converte a entrada capturando o valor atual do evento
func (in InscricaoInput) Entity(valorPago int64) *InscricaoEvento {
	return &InscricaoEvento{
		EventoID:             in.EventoID,
		BailarinoID:          in.BailarinoID,
		NomeParticipante:     in.NomeParticipante,
		EmailParticipante:    in.EmailParticipante,
		TelefoneParticipante: in.TelefoneParticipante,
		ValorPago:            valorPago,
		StatusPagamento:      PagamentoPendente,
	}
}

// InscricaoPatch é a alteração parcial de inscricoesEventos.update
type InscricaoPatch struct {
	StatusPagamento    *StatusPagamento `json:"statusPagamento" column:"status_pagamento" validate:"omitempty,oneof=pendente pago cancelado"`
	DataPagamento      *Timestamp       `json:"dataPagamento" column:"data_pagamento"`
	Presente           *bool            `json:"presente" column:"presente"`
	CertificadoEmitido *bool            `json:"certificadoEmitido" column:"certificado_emitido"`
	Observacoes        *string          `json:"observacoes" column:"observacoes"`
}
