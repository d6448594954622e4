package model

import "time"

// Noticia é uma notícia do site, visível ao público depois de publicada
type Noticia struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Titulo         string    `gorm:"size:255;not null" json:"titulo"`
	Resumo         *string   `gorm:"size:500" json:"resumo"`
	Conteudo       string    `gorm:"not null" json:"conteudo"`
	Autor          *string   `gorm:"size:255" json:"autor"`
	Categoria      string    `gorm:"size:50;not null" json:"categoria"`
	ImagemURL      *string   `json:"imagemUrl"`
	Publicada      bool      `gorm:"not null;index" json:"publicada"`
	DataPublicacao *Date     `json:"dataPublicacao"`
	Visualizacoes  int64     `gorm:"not null" json:"visualizacoes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName define o nome da tabela
func (Noticia) TableName() string {
	return "noticias"
}

// NoticiaInput é a entrada de noticias.create
type NoticiaInput struct {
	Titulo    string  `json:"titulo" validate:"required,max=255"`
	Resumo    *string `json:"resumo" validate:"omitempty,max=500"`
	Conteudo  string  `json:"conteudo" validate:"required"`
	Autor     *string `json:"autor" validate:"omitempty,max=255"`
	Categoria string  `json:"categoria" validate:"required,oneof=Aulas Eventos Workshops Competições Geral"`
	ImagemURL *string `json:"imagemUrl"`
	Publicada bool    `json:"publicada"`
}

// Entity converte a entrada; notícias publicadas recebem a data de hoje
func (in NoticiaInput) Entity(hoje Date) *Noticia {
	n := &Noticia{
		Titulo:    in.Titulo,
		Resumo:    in.Resumo,
		Conteudo:  in.Conteudo,
		Autor:     in.Autor,
		Categoria: in.Categoria,
		ImagemURL: in.ImagemURL,
		Publicada: in.Publicada,
	}
	if in.Publicada {
		n.DataPublicacao = &hoje
	}
	return n
}

// NoticiaPatch é a alteração parcial de noticias.update
type NoticiaPatch struct {
	Titulo         *string `json:"titulo" column:"titulo" validate:"omitempty,max=255"`
	Resumo         *string `json:"resumo" column:"resumo" validate:"omitempty,max=500"`
	Conteudo       *string `json:"conteudo" column:"conteudo"`
	Autor          *string `json:"autor" column:"autor" validate:"omitempty,max=255"`
	Categoria      *string `json:"categoria" column:"categoria" validate:"omitempty,oneof=Aulas Eventos Workshops Competições Geral"`
	ImagemURL      *string `json:"imagemUrl" column:"imagem_url"`
	Publicada      *bool   `json:"publicada" column:"publicada"`
	DataPublicacao *Date   `json:"dataPublicacao" column:"data_publicacao"`
}
