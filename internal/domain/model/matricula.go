package model

import "time"

// TipoBolsa é a modalidade de bolsa de uma matrícula
type TipoBolsa string

const (
	BolsaNenhuma  TipoBolsa = "nenhuma"
	BolsaParcial  TipoBolsa = "parcial"
	BolsaIntegral TipoBolsa = "integral"
)

// MatriculaStatus é a situação de uma matrícula
type MatriculaStatus string

const (
	MatriculaAtiva     MatriculaStatus = "ativa"
	MatriculaCancelada MatriculaStatus = "cancelada"
	MatriculaConcluida MatriculaStatus = "concluida"
	MatriculaSuspensa  MatriculaStatus = "suspensa"
)

// Matricula liga um bailarino a um curso
type Matricula struct {
	ID                     int64           `gorm:"primaryKey" json:"id"`
	BailarinoID            int64           `gorm:"not null;index" json:"bailarinoId"`
	CursoID                int64           `gorm:"not null;index" json:"cursoId"`
	DataMatricula          time.Time       `gorm:"not null" json:"dataMatricula"`
	DataInicio             Date            `gorm:"not null" json:"dataInicio"`
	DataFim                *Date           `json:"dataFim"`
	TipoBolsa              TipoBolsa       `gorm:"size:10;not null" json:"tipoBolsa"`
	PercentualBolsa        int             `gorm:"not null" json:"percentualBolsa"`
	ValorMensalComDesconto int64           `gorm:"not null" json:"valorMensalComDesconto"` // centavos
	Status                 MatriculaStatus `gorm:"size:10;not null;index" json:"status"`
	MotivoCancelamento     *string         `json:"motivoCancelamento"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Matricula) TableName() string {
	return "matriculas"
}

// MatriculaDetalhada acrescenta à matrícula os nomes do bailarino e do curso
type MatriculaDetalhada struct {
	Matricula
	BailarinoNome   string `json:"bailarinoNome"`
	CursoNome       string `json:"cursoNome"`
	CursoModalidade string `json:"cursoModalidade"`
}

// MatriculaInput é a entrada de matriculas.create.
// ValorMensalComDesconto é calculado a partir do curso quando omitido.
type MatriculaInput struct {
	BailarinoID            int64     `json:"bailarinoId" validate:"required,min=1"`
	CursoID                int64     `json:"cursoId" validate:"required,min=1"`
	DataInicio             *Date     `json:"dataInicio" validate:"required"`
	DataFim                *Date     `json:"dataFim"`
	TipoBolsa              TipoBolsa `json:"tipoBolsa" validate:"required,oneof=nenhuma parcial integral"`
	PercentualBolsa        int       `json:"percentualBolsa" validate:"min=0,max=100"`
	ValorMensalComDesconto *int64    `json:"valorMensalComDesconto" validate:"omitempty,min=0"`
}

// MatriculaPatch é a alteração parcial de matriculas.update
type MatriculaPatch struct {
	DataInicio             *Date            `json:"dataInicio" column:"data_inicio"`
	DataFim                *Date            `json:"dataFim" column:"data_fim"`
	TipoBolsa              *TipoBolsa       `json:"tipoBolsa" column:"tipo_bolsa" validate:"omitempty,oneof=nenhuma parcial integral"`
	PercentualBolsa        *int             `json:"percentualBolsa" column:"percentual_bolsa" validate:"omitempty,min=0,max=100"`
	ValorMensalComDesconto *int64           `json:"valorMensalComDesconto" column:"valor_mensal_com_desconto" validate:"omitempty,min=0"`
	Status                 *MatriculaStatus `json:"status" column:"status" validate:"omitempty,oneof=ativa cancelada concluida suspensa"`
	MotivoCancelamento     *string          `json:"motivoCancelamento" column:"motivo_cancelamento"`
}
