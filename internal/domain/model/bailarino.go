package model

import "time"

// Bailarino é um aluno ou intérprete da escola
type Bailarino struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	Nome           string  `gorm:"size:255;not null" json:"nome"`
	DataNascimento Date    `gorm:"not null" json:"dataNascimento"`
	CPF            *string `gorm:"size:14" json:"cpf"`
	RG             *string `gorm:"size:20" json:"rg"`
	Telefone       *string `gorm:"size:20" json:"telefone"`
	Email          *string `gorm:"size:320;index" json:"email"`
	Endereco       *string `json:"endereco"`
	Cidade         *string `gorm:"size:100" json:"cidade"`
	Estado         *string `gorm:"size:2" json:"estado"`
	CEP            *string `gorm:"size:10" json:"cep"`

	// Responsável (menores de idade)
	NomeResponsavel     *string `gorm:"size:255" json:"nomeResponsavel"`
	TelefoneResponsavel *string `gorm:"size:20" json:"telefoneResponsavel"`
	EmailResponsavel    *string `gorm:"size:320" json:"emailResponsavel"`

	// Saúde
	TipoSanguineo      *string `gorm:"size:5" json:"tipoSanguineo"`
	AlergiasRestricoes *string `json:"alergiasRestricoes"`
	ContatoEmergencia  *string `gorm:"size:255" json:"contatoEmergencia"`
	TelefoneEmergencia *string `gorm:"size:20" json:"telefoneEmergencia"`

	FotoURL     *string   `json:"fotoUrl"`
	Ativo       bool      `gorm:"not null" json:"ativo"`
	Observacoes *string   `json:"observacoes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Bailarino) TableName() string {
	return "bailarinos"
}

// BailarinoInput é a entrada de bailarinos.create
type BailarinoInput struct {
	Nome                string  `json:"nome" validate:"required,max=255"`
	DataNascimento      *Date   `json:"dataNascimento" validate:"required"`
	CPF                 *string `json:"cpf" validate:"omitempty,max=14"`
	RG                  *string `json:"rg" validate:"omitempty,max=20"`
	Telefone            *string `json:"telefone" validate:"omitempty,max=20"`
	Email               *string `json:"email" validate:"omitempty,email"`
	Endereco            *string `json:"endereco"`
	Cidade              *string `json:"cidade" validate:"omitempty,max=100"`
	Estado              *string `json:"estado" validate:"omitempty,max=2"`
	CEP                 *string `json:"cep" validate:"omitempty,max=10"`
	NomeResponsavel     *string `json:"nomeResponsavel" validate:"omitempty,max=255"`
	TelefoneResponsavel *string `json:"telefoneResponsavel" validate:"omitempty,max=20"`
	EmailResponsavel    *string `json:"emailResponsavel" validate:"omitempty,email"`
	TipoSanguineo       *string `json:"tipoSanguineo" validate:"omitempty,max=5"`
	AlergiasRestricoes  *string `json:"alergiasRestricoes"`
	ContatoEmergencia   *string `json:"contatoEmergencia" validate:"omitempty,max=255"`
	TelefoneEmergencia  *string `json:"telefoneEmergencia" validate:"omitempty,max=20"`
	FotoURL             *string `json:"fotoUrl"`
	Observacoes         *string `json:"observacoes"`
}

// Entity converte a entrada em um bailarino ativo
func (in BailarinoInput) Entity() *Bailarino {
	return &Bailarino{
		Nome:                in.Nome,
		DataNascimento:      *in.DataNascimento,
		CPF:                 in.CPF,
		RG:                  in.RG,
		Telefone:            in.Telefone,
		Email:               in.Email,
		Endereco:            in.Endereco,
		Cidade:              in.Cidade,
		Estado:              in.Estado,
		CEP:                 in.CEP,
		NomeResponsavel:     in.NomeResponsavel,
		TelefoneResponsavel: in.TelefoneResponsavel,
		EmailResponsavel:    in.EmailResponsavel,
		TipoSanguineo:       in.TipoSanguineo,
		AlergiasRestricoes:  in.AlergiasRestricoes,
		ContatoEmergencia:   in.ContatoEmergencia,
		TelefoneEmergencia:  in.TelefoneEmergencia,
		FotoURL:             in.FotoURL,
		Ativo:               true,
		Observacoes:         in.Observacoes,
	}
}

// BailarinoPatch é a alteração parcial de bailarinos.update
type BailarinoPatch struct {
	Nome                *string `json:"nome" column:"nome" validate:"omitempty,max=255"`
	DataNascimento      *Date   `json:"dataNascimento" column:"data_nascimento"`
	CPF                 *string `json:"cpf" column:"cpf" validate:"omitempty,max=14"`
	RG                  *string `json:"rg" column:"rg" validate:"omitempty,max=20"`
	Telefone            *string `json:"telefone" column:"telefone" validate:"omitempty,max=20"`
	Email               *string `json:"email" column:"email" validate:"omitempty,email"`
	Endereco            *string `json:"endereco" column:"endereco"`
	Cidade              *string `json:"cidade" column:"cidade" validate:"omitempty,max=100"`
	Estado              *string `json:"estado" column:"estado" validate:"omitempty,max=2"`
	CEP                 *string `json:"cep" column:"cep" validate:"omitempty,max=10"`
	NomeResponsavel     *string `json:"nomeResponsavel" column:"nome_responsavel" validate:"omitempty,max=255"`
	TelefoneResponsavel *string `json:"telefoneResponsavel" column:"telefone_responsavel" validate:"omitempty,max=20"`
	EmailResponsavel    *string `json:"emailResponsavel" column:"email_responsavel" validate:"omitempty,email"`
	TipoSanguineo       *string `json:"tipoSanguineo" column:"tipo_sanguineo" validate:"omitempty,max=5"`
	AlergiasRestricoes  *string `json:"alergiasRestricoes" column:"alergias_restricoes"`
	ContatoEmergencia   *string `json:"contatoEmergencia" column:"contato_emergencia" validate:"omitempty,max=255"`
	TelefoneEmergencia  *string `json:"telefoneEmergencia" column:"telefone_emergencia" validate:"omitempty,max=20"`
	FotoURL             *string `json:"fotoUrl" column:"foto_url"`
	Ativo               *bool   `json:"ativo" column:"ativo"`
	Observacoes         *string `json:"observacoes" column:"observacoes"`
}
