package domain

// HistoryAnalysisInternal é o relatório interno (técnico) da análise
// consolidada do histórico, gerado pelo serviço de narrativa
type HistoryAnalysisInternal struct {
	StatusCiclo           string `json:"status_ciclo"`
	TendenciaScore        string `json:"tendencia_score"`
	RaioXPilares          string `json:"raio_x_pilares"`
	EvolucaoDependencia   string `json:"evolucao_dependencia"`
	MaturidadeOperacional string `json:"maturidade_operacional"`
	ConclusaoEstrategica  string `json:"conclusao_estrategica"`
	FraseFinal            string `json:"frase_final"`
}

// HistoryAnalysisExecutive é o relatório executivo (decisório) da análise
// consolidada do histórico
type HistoryAnalysisExecutive struct {
	Situacao       string `json:"situacao"`
	CausaPrincipal string `json:"causa_principal"`
	Risco          string `json:"risco"`
	AcaoImediata   string `json:"acao_imediata"`
	FraseFinal     string `json:"frase_final"`
}

// HistoryAnalysis é a resposta de formato fixo do serviço de narrativa para o
// histórico consolidado. Os campos numéricos são exibidos como recebidos; os
// textos são opacos para o núcleo de cálculo
type HistoryAnalysis struct {
	ClassificacaoCiclo    string                   `json:"classificacao_ciclo"`
	NivelAlerta           string                   `json:"nivel_alerta"`
	ScoreAtual            float64                  `json:"score_atual"`
	DependenciaAtual      float64                  `json:"dependencia_atual"`
	IndiceRiscoEstrutural float64                  `json:"indice_risco_estrutural"`
	IndiceConsistencia    float64                  `json:"indice_consistencia"`
	ProjecaoProximoCiclo  float64                  `json:"projecao_proximo_ciclo"`
	Interno               HistoryAnalysisInternal  `json:"interno"`
	Executivo             HistoryAnalysisExecutive `json:"executivo"`
}
