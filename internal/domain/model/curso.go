package model

import "time"

// Nivel é o nível técnico de um curso
type Nivel string

const (
	NivelIniciante     Nivel = "iniciante"
	NivelIntermediario Nivel = "intermediario"
	NivelAvancado      Nivel = "avancado"
)

// Curso é uma turma recorrente com preço e capacidade fixos
type Curso struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Nome          string    `gorm:"size:255;not null" json:"nome"`
	Descricao     *string   `json:"descricao"`
	Modalidade    string    `gorm:"size:100;not null" json:"modalidade"`
	Nivel         Nivel     `gorm:"size:20;not null" json:"nivel"`
	FaixaEtaria   *string   `gorm:"size:50" json:"faixaEtaria"`
	DiasSemana    *string   `gorm:"size:100" json:"diasSemana"`
	Horario       *string   `gorm:"size:50" json:"horario"`
	DuracaoAula   *int      `json:"duracaoAula"`
	ValorMensal   int64     `gorm:"not null" json:"valorMensal"` // centavos
	VagasTotal    int       `gorm:"not null" json:"vagasTotal"`
	VagasOcupadas int       `gorm:"not null" json:"vagasOcupadas"`
	Ativo         bool      `gorm:"not null" json:"ativo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Curso) TableName() string {
	return "cursos"
}

// CursoInput é a entrada de cursos.create
type CursoInput struct {
	Nome        string  `json:"nome" validate:"required,max=255"`
	Descricao   *string `json:"descricao"`
	Modalidade  string  `json:"modalidade" validate:"required,max=100"`
	Nivel       Nivel   `json:"nivel" validate:"required,oneof=iniciante intermediario avancado"`
	FaixaEtaria *string `json:"faixaEtaria" validate:"omitempty,max=50"`
	DiasSemana  *string `json:"diasSemana" validate:"omitempty,max=100"`
	Horario     *string `json:"horario" validate:"omitempty,max=50"`
	DuracaoAula *int    `json:"duracaoAula" validate:"omitempty,min=1"`
	ValorMensal *int64  `json:"valorMensal" validate:"required,min=0"`
	VagasTotal  *int    `json:"vagasTotal" validate:"required,min=0"`
}

// Entity converte a entrada em um curso ativo sem vagas ocupadas
func (in CursoInput) Entity() *Curso {
	return &Curso{
		Nome:        in.Nome,
		Descricao:   in.Descricao,
		Modalidade:  in.Modalidade,
		Nivel:       in.Nivel,
		FaixaEtaria: in.FaixaEtaria,
		DiasSemana:  in.DiasSemana,
		Horario:     in.Horario,
		DuracaoAula: in.DuracaoAula,
		ValorMensal: *in.ValorMensal,
		VagasTotal:  *in.VagasTotal,
		Ativo:       true,
	}
}

// CursoPatch é a alteração parcial de cursos.update.
// vagasOcupadas não é editável: só as matrículas movem o contador.
type CursoPatch struct {
	Nome        *string `json:"nome" column:"nome" validate:"omitempty,max=255"`
	Descricao   *string `json:"descricao" column:"descricao"`
	Modalidade  *string `json:"modalidade" column:"modalidade" validate:"omitempty,max=100"`
	Nivel       *Nivel  `json:"nivel" column:"nivel" validate:"omitempty,oneof=iniciante intermediario avancado"`
	FaixaEtaria *string `json:"faixaEtaria" column:"faixa_etaria" validate:"omitempty,max=50"`
	DiasSemana  *string `json:"diasSemana" column:"dias_semana" validate:"omitempty,max=100"`
	Horario     *string `json:"horario" column:"horario" validate:"omitempty,max=50"`
	DuracaoAula *int    `json:"duracaoAula" column:"duracao_aula" validate:"omitempty,min=1"`
	ValorMensal *int64  `json:"valorMensal" column:"valor_mensal" validate:"omitempty,min=0"`
	VagasTotal  *int    `json:"vagasTotal" column:"vagas_total" validate:"omitempty,min=0"`
	Ativo       *bool   `json:"ativo" column:"ativo"`
}
