package domain

// PillarComparison é a linha da tabela de deltas por pilar entre dois períodos
type PillarComparison struct {
	Name         string  `json:"name"`
	BaseReal     float64 `json:"baseReal"`
	CurrentReal  float64 `json:"currentReal"`
	DeltaValue   float64 `json:"deltaValue"`
	DeltaPercent float64 `json:"deltaPercent"`
	BaseICM      float64 `json:"baseICM"`
	CurrentICM   float64 `json:"currentICM"`
}

// SellerPillarComparison detalha um pilar de um vendedor nos dois períodos
type SellerPillarComparison struct {
	Base       float64 `json:"base"`
	Current    float64 `json:"current"`
	Delta      float64 `json:"delta"`
	BaseICM    float64 `json:"baseICM"`
	CurrentICM float64 `json:"currentICM"`
}

// SellerComparison é a movimentação individual de um vendedor entre períodos.
// O ranking é calculado pelo realizado mercantil bruto de cada período
type SellerComparison struct {
	ID           string                            `json:"id"`
	Name         string                            `json:"name"`
	BaseScore    float64                           `json:"baseScore"`
	CurrentScore float64                           `json:"currentScore"`
	DeltaScore   float64                           `json:"deltaScore"`
	BaseRank     int                               `json:"baseRank"`
	CurrentRank  int                               `json:"currentRank"`
	DeltaRank    int                               `json:"deltaRank"`
	Alerts       []string                          `json:"alerts"`
	Pillars      map[string]SellerPillarComparison `json:"pillars"`
}

// EvolutionAlert é um alerta acionável gerado pelo comparativo.
// Tipo A = regressão de pilar; tipo C = concentração de resultado
type EvolutionAlert struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Action string `json:"action"`
}

// StoreComparison resume a loja no comparativo
type StoreComparison struct {
	Pillars        []PillarComparison `json:"pillars"`
	BaseScore      float64            `json:"baseScore"`
	CurrentScore   float64            `json:"currentScore"`
	DeltaScore     float64            `json:"deltaScore"`
	Classification string             `json:"classification"`
	Top2Share      float64            `json:"top2Share"`
}

// ComparisonResult é o comparativo completo entre um período base (A) e um
// período atual (B). É efêmero: recalculado a cada solicitação, nunca persistido
type ComparisonResult struct {
	PeriodA          string             `json:"periodA"`
	PeriodB          string             `json:"periodB"`
	Store            StoreComparison    `json:"store"`
	Sellers          []SellerComparison `json:"sellers"`
	Alerts           []EvolutionAlert   `json:"alerts"`
	ExecutiveSummary string             `json:"executiveSummary"`
}

// HistoryPoint é um ponto da série temporal usada nos gráficos de evolução
type HistoryPoint struct {
	PeriodID      string  `json:"periodId"`
	Label         string  `json:"label"`
	Score         float64 `json:"score"`
	MercantilReal float64 `json:"mercantilReal"`
	MercantilMeta float64 `json:"mercantilMeta"`
	CDCReal       float64 `json:"cdcReal"`
	CDCMeta       float64 `json:"cdcMeta"`
	ServicesReal  float64 `json:"servicesReal"`
	ServicesMeta  float64 `json:"servicesMeta"`
	Dependency    float64 `json:"dependency"`
	MercantilICM  float64 `json:"mercantilICM"`
	CDCICM        float64 `json:"cdcICM"`
	ServicesICM   float64 `json:"servicesICM"`
}
