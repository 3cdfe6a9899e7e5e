package processing

import (
	"fmt"
	"math"

	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/scoring"
)

// TrendReading classifica a leitura de tendência da janela curta de períodos:
// a série inteira precisa ser estritamente monotônica para caracterizar alta
// ou retração; qualquer oscilação é volatilidade. Com menos de dois pontos
// não há leitura possível. A regra de três pontos com limiar de 5 usada no
// histórico longo é outra função (scoring.SeriesTrend)
func TrendReading(values []float64) string {
	if len(values) < 2 {
		return "Dados insuficientes"
	}

	rising, falling := true, true
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			rising = false
		}
		if values[i] >= values[i-1] {
			falling = false
		}
	}

	switch {
	case rising:
		return "Tendência de alta consistente."
	case falling:
		return "Tendência de retração recorrente."
	default:
		return "Volatilidade no desempenho."
	}
}

// buildIntelligence preenche o bloco de inteligência do resultado: tendências
// da loja e dos vendedores sobre a janela histórica, radar, risco de
// concentração e a leitura de saúde baseada no score penalizado da loja
func buildIntelligence(out *domain.OracleResult, window []domain.HistoryRecord) {
	storeTrend := domain.TrendAnalysis{
		Mercantil: TrendReading(storePillarSeries(window, out.Store, pillarMercantil)),
		CDC:       TrendReading(storePillarSeries(window, out.Store, pillarCDC)),
		Services:  TrendReading(storePillarSeries(window, out.Store, pillarServices)),
	}

	for i := range out.Sellers {
		annotateSeller(&out.Sellers[i], window)
	}

	healthScore := scoring.PeriodScoreStore(out.Store, out.Sellers)

	out.Intelligence = &domain.OracleIntelligence{
		Radar:             buildRadar(out, window),
		StoreTrend:        storeTrend,
		ConcentrationRisk: concentrationRisk(out.Sellers),
		HealthScore:       healthScore,
		HealthReading:     scoring.ClassifyHealth(healthScore),
	}
}

type pillarKey int

const (
	pillarMercantil pillarKey = iota
	pillarCDC
	pillarServices
)

func storePillarICM(store domain.Store, key pillarKey) float64 {
	switch key {
	case pillarMercantil:
		return scoring.ICM(store.Pillars.Mercantil.Realized, store.Pillars.Mercantil.Meta)
	case pillarCDC:
		return scoring.ICM(store.Pillars.CDC.Realized, store.Pillars.CDC.Meta)
	default:
		return scoring.ICM(store.Pillars.Services.Realized, store.Pillars.Services.Meta)
	}
}

// storePillarSeries monta a série do ICM do pilar, janela + período atual,
// sempre recalculada a partir dos números brutos dos snapshots
func storePillarSeries(window []domain.HistoryRecord, current domain.Store, key pillarKey) []float64 {
	series := make([]float64, 0, len(window)+1)
	for _, record := range window {
		series = append(series, storePillarICM(record.Dados.Store, key))
	}
	return append(series, storePillarICM(current, key))
}

// sellerScoreSeries monta a série de scores do vendedor casando por nome nos
// snapshots da janela. Períodos sem o vendedor são simplesmente ignorados
func sellerScoreSeries(window []domain.HistoryRecord, current domain.Seller) []float64 {
	series := make([]float64, 0, len(window)+1)
	for _, record := range window {
		for _, prior := range record.Dados.Sellers {
			if prior.Name == current.Name {
				series = append(series, scoring.PeriodScoreSeller(prior))
				break
			}
		}
	}
	return append(series, scoring.PeriodScoreSeller(current))
}

func sellerPillarSeries(window []domain.HistoryRecord, current domain.Seller, key pillarKey) []float64 {
	pick := func(p domain.SellerPillars) domain.Pillar {
		switch key {
		case pillarMercantil:
			return p.Mercantil
		case pillarCDC:
			return p.CDC
		default:
			return p.Services
		}
	}

	series := make([]float64, 0, len(window)+1)
	for _, record := range window {
		for _, prior := range record.Dados.Sellers {
			if prior.Name == current.Name {
				pillar := pick(prior.Pillars)
				series = append(series, scoring.ICM(pillar.Realized, pillar.Meta))
				break
			}
		}
	}

	pillar := pick(current.Pillars)
	return append(series, scoring.ICM(pillar.Realized, pillar.Meta))
}

func annotateSeller(seller *domain.Seller, window []domain.HistoryRecord) {
	scores := sellerScoreSeries(window, *seller)

	var consistent float64
	for _, score := range scores {
		if score >= 100 {
			consistent++
		}
	}
	consistency := (consistent / float64(len(scores))) * 100

	seller.Intelligence = &domain.SellerIntelligence{
		Trend: domain.TrendAnalysis{
			Mercantil: TrendReading(sellerPillarSeries(window, *seller, pillarMercantil)),
			CDC:       TrendReading(sellerPillarSeries(window, *seller, pillarCDC)),
			Services:  TrendReading(sellerPillarSeries(window, *seller, pillarServices)),
		},
		Consistency:        consistency,
		ConsistencyReading: consistencyReading(consistency),
		RiskAlert:          riskAlert(scores),
	}
}

func consistencyReading(consistency float64) string {
	switch {
	case consistency >= 80:
		return "Entrega consistente acima da meta."
	case consistency >= 50:
		return "Entrega parcialmente consistente."
	default:
		return "Entrega irregular nos últimos ciclos."
	}
}

// riskAlert sinaliza queda brusca entre os dois últimos scores ou dois ciclos
// seguidos abaixo de 80 pontos. Sem dois pontos não há alerta
func riskAlert(scores []float64) string {
	if len(scores) < 2 {
		return ""
	}

	previous := scores[len(scores)-2]
	current := scores[len(scores)-1]

	if previous-current > 10 {
		return fmt.Sprintf("Queda de %.1f pts no último ciclo.", previous-current)
	}
	if previous < 80 && current < 80 {
		return "Dois ciclos consecutivos abaixo de 80 pontos."
	}
	return ""
}

func buildRadar(out *domain.OracleResult, window []domain.HistoryRecord) domain.IntelligenceRadar {
	radar := domain.IntelligenceRadar{
		StrongestPillar:  "-",
		VulnerablePillar: "-",
		RisingSeller:     "Nenhum",
		RiskySeller:      "Nenhum",
		DispersionLevel:  "Baixa",
	}

	pillars := []struct {
		name string
		icm  float64
	}{
		{"Mercantil", out.Store.Pillars.Mercantil.ICM},
		{"CDC", out.Store.Pillars.CDC.ICM},
		{"Serviços", out.Store.Pillars.Services.ICM},
	}

	strongest, weakest := pillars[0], pillars[0]
	for _, p := range pillars[1:] {
		if p.icm > strongest.icm {
			strongest = p
		}
		if p.icm < weakest.icm {
			weakest = p
		}
	}
	radar.StrongestPillar = strongest.name
	radar.VulnerablePillar = weakest.name

	if len(out.Sellers) > 0 {
		sorted := sortSellersByScore(out.Sellers)
		radar.RisingSeller = sorted[0].Name

		var below80 float64
		for _, s := range out.Sellers {
			if s.Score < 80 {
				below80++
			}
			if radar.RiskySeller == "Nenhum" && s.Intelligence != nil && s.Intelligence.RiskAlert != "" {
				radar.RiskySeller = s.Name
			}
		}
		if below80/float64(len(out.Sellers)) > 0.30 {
			radar.DispersionLevel = "Alta"
		}
	}

	radar.GeneralTrend = generalTrend(out, window)

	return radar
}

// generalTrend compara o índice de saúde atual com o do período imediatamente
// anterior, com banda morta de 2 pontos para caracterizar estabilidade
func generalTrend(out *domain.OracleResult, window []domain.HistoryRecord) string {
	if len(window) == 0 {
		return "Dados insuficientes"
	}

	previous := window[len(window)-1].Dados.Store
	previousIndex := scoring.CompositeIndex(
		scoring.ICM(previous.Pillars.Mercantil.Realized, previous.Pillars.Mercantil.Meta),
		scoring.ICM(previous.Pillars.CDC.Realized, previous.Pillars.CDC.Meta),
		scoring.ICM(previous.Pillars.Services.Realized, previous.Pillars.Services.Meta),
	)

	delta := out.Store.HealthIndex - previousIndex
	switch {
	case math.Abs(delta) < 2:
		return "Estabilidade operacional."
	case delta > 0:
		return fmt.Sprintf("Tendência de alta (+%.1f pts).", delta)
	default:
		return fmt.Sprintf("Tendência de retração (%.1f pts).", delta)
	}
}

// concentrationRisk avalia a fatia dos dois maiores scores sobre o total do
// time e traduz em leitura de risco
func concentrationRisk(sellers []domain.Seller) string {
	if len(sellers) == 0 {
		return "Saudável"
	}

	sorted := sortSellersByScore(sellers)

	var total float64
	for _, s := range sellers {
		total += s.Score
	}

	top2 := sorted[0].Score
	if len(sorted) > 1 {
		top2 += sorted[1].Score
	}
	share := top2 / math.Max(total, 1)

	switch {
	case share > 0.60:
		return fmt.Sprintf("Risco elevado: os dois maiores vendedores concentram %.1f%% do score do time.", share*100)
	case share > 0.50:
		return fmt.Sprintf("Alta dependência dos dois principais vendedores (%.1f%% do score do time).", share*100)
	default:
		return "Saudável"
	}
}
