package model

// DashboardStats agrega os indicadores do painel administrativo
type DashboardStats struct {
	TotalBailarinos       int64  `json:"totalBailarinos"`
	TotalCursos           int64  `json:"totalCursos"`
	TotalMatriculasAtivas int64  `json:"totalMatriculasAtivas"`
	ReceitaMensal         int64  `json:"receitaMensal"` // centavos pagos nos últimos 30 dias
	Inadimplencia         int64  `json:"inadimplencia"`
	ReceitaFormatada      string `json:"receitaFormatada" gorm:"-"`
}

// MatriculasPorCurso conta matrículas ativas de um curso
type MatriculasPorCurso struct {
	CursoNome       string `json:"cursoNome"`
	TotalMatriculas int64  `json:"totalMatriculas"`
}

// PortalAluno reúne os dados do aluno localizados pelo e-mail
type PortalAluno struct {
	Bailarino    *Bailarino    `json:"bailarino"`
	Matriculas   []Matricula   `json:"matriculas"`
	Mensalidades []Mensalidade `json:"mensalidades"`
}
