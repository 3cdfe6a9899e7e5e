// Package history implementa o histórico de snapshots por granularidade e o
// analisador de tendência de longo horizonte usado nos gráficos de evolução
package history

import (
	"math"
	"sort"

	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/scoring"
)

// CurrentPointID identifica o ponto do período em edição, ainda não salvo
const CurrentPointID = "current"

// TrendReport é a saída do analisador: a série de pontos para os gráficos e
// as leituras de tendência calculadas sobre os três últimos pontos
type TrendReport struct {
	Points          []domain.HistoryPoint `json:"points"`
	ScoreTrend      string                `json:"scoreTrend"`
	MercantilTrend  string                `json:"mercantilTrend"`
	CDCTrend        string                `json:"cdcTrend"`
	ServicesTrend   string                `json:"servicesTrend"`
	DependencyTrend string                `json:"dependencyTrend"`
}

// buildPoint converte um snapshot em um ponto da série, recalculando score,
// ICMs e dependência a partir dos números brutos
func buildPoint(periodID string, data domain.OracleData) domain.HistoryPoint {
	store := data.Store

	sorted := scoring.SortSellersByMercantil(data.Sellers)
	var top2 float64
	if len(sorted) > 0 {
		top2 += sorted[0].Pillars.Mercantil.Realized
	}
	if len(sorted) > 1 {
		top2 += sorted[1].Pillars.Mercantil.Realized
	}
	dependency := (top2 / math.Max(store.Pillars.Mercantil.Realized, 1)) * 100

	return domain.HistoryPoint{
		PeriodID:      periodID,
		Label:         store.Period.GenerateLabel(),
		Score:         scoring.PeriodScoreStore(store, data.Sellers),
		MercantilReal: store.Pillars.Mercantil.Realized,
		MercantilMeta: store.Pillars.Mercantil.Meta,
		CDCReal:       store.Pillars.CDC.Realized,
		CDCMeta:       store.Pillars.CDC.Meta,
		ServicesReal:  store.Pillars.Services.Realized,
		ServicesMeta:  store.Pillars.Services.Meta,
		Dependency:    dependency,
		MercantilICM:  scoring.ScoreICM(store.Pillars.Mercantil.Realized, store.Pillars.Mercantil.Meta),
		CDCICM:        scoring.ScoreICM(store.Pillars.CDC.Realized, store.Pillars.CDC.Meta),
		ServicesICM:   scoring.ScoreICM(store.Pillars.Services.Realized, store.Pillars.Services.Meta),
	}
}

// BuildPoints monta a série cronológica de pontos a partir dos snapshots e
// anexa os dados em edição quando ainda não existe registro para o mesmo
// período (mesmo tipo e mesmos campos de identidade)
func BuildPoints(records []domain.HistoryRecord, current *domain.OracleData) []domain.HistoryPoint {
	sorted := make([]domain.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Dados.Store.Period.ReferenceDate().
			Before(sorted[j].Dados.Store.Period.ReferenceDate())
	})

	points := make([]domain.HistoryPoint, 0, len(sorted)+1)
	for _, record := range sorted {
		points = append(points, buildPoint(record.ID, record.Dados))
	}

	if current == nil {
		return points
	}

	for _, record := range sorted {
		if record.Dados.Store.Period.SameWindow(current.Store.Period) {
			return points
		}
	}

	return append(points, buildPoint(CurrentPointID, *current))
}

// Analyze produz o relatório de tendência sobre a série completa
func Analyze(records []domain.HistoryRecord, current *domain.OracleData) *TrendReport {
	points := BuildPoints(records, current)

	pick := func(get func(domain.HistoryPoint) float64) []float64 {
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = get(p)
		}
		return values
	}

	return &TrendReport{
		Points:          points,
		ScoreTrend:      scoring.SeriesTrend(pick(func(p domain.HistoryPoint) float64 { return p.Score })),
		MercantilTrend:  scoring.SeriesTrend(pick(func(p domain.HistoryPoint) float64 { return p.MercantilICM })),
		CDCTrend:        scoring.SeriesTrend(pick(func(p domain.HistoryPoint) float64 { return p.CDCICM })),
		ServicesTrend:   scoring.SeriesTrend(pick(func(p domain.HistoryPoint) float64 { return p.ServicesICM })),
		DependencyTrend: scoring.SeriesTrend(pick(func(p domain.HistoryPoint) float64 { return p.Dependency })),
	}
}
