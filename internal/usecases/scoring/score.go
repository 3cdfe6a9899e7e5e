package scoring

import (
	"math"
	"sort"

	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
)

// Clamp limita val ao intervalo [min, max]
func Clamp(val, min, max float64) float64 {
	return math.Min(math.Max(val, min), max)
}

// ScoreICM é a variante de ICM usada nas notas de score: o denominador é
// saturado em 1 em vez de retornar zero, a convenção herdada da planilha
// original de pontuação
func ScoreICM(real, meta float64) float64 {
	return (real / math.Max(meta, 1)) * 100
}

// PillarNote converte realizado/meta na nota do pilar para o score: o ICM é
// limitado a 200 e depois capado em 100, de modo que superar a meta não eleva
// a nota além do que 100% daria (o excedente fica visível só no ICM)
func PillarNote(real, meta float64) float64 {
	return math.Min(100, Clamp(ScoreICM(real, meta), 0, 200))
}

// ScoreBase é a média ponderada das três notas de pilar, sem penalidades
func ScoreBase(noteMerc, noteCDC, noteServ float64) float64 {
	return WeightMercantil*noteMerc + WeightCDC*noteCDC + WeightServices*noteServ
}

// SpreadPenalty penaliza o desequilíbrio entre pilares: a distância entre a
// melhor e a pior nota custa 0,25 ponto por ponto de spread, até 15
func SpreadPenalty(noteMerc, noteCDC, noteServ float64) float64 {
	max := math.Max(noteMerc, math.Max(noteCDC, noteServ))
	min := math.Min(noteMerc, math.Min(noteCDC, noteServ))
	return math.Min(15, (max-min)*0.25)
}

// DependencyPenalty penaliza a concentração do mercantil nos dois maiores
// vendedores (apenas no score da loja). Até 50% de share não há penalidade;
// entre 50% e 60% cresce 1 ponto por ponto percentual; acima de 60% cresce
// em dobro. Limitada a 20 pontos
func DependencyPenalty(top1MercReal, top2MercReal, totalMercReal float64) float64 {
	top2Share := (top1MercReal + top2MercReal) / math.Max(totalMercReal, 1)

	var penalty float64
	switch {
	case top2Share <= 0.50:
		penalty = 0
	case top2Share <= 0.60:
		penalty = (top2Share - 0.50) * 100
	default:
		penalty = 10 + (top2Share-0.60)*100*2
	}

	return Clamp(penalty, 0, 20)
}

// ZerosPenaltySeller penaliza o vendedor por pilares zerados: 8, 18 ou 30
// pontos para um, dois ou três pilares sem realizado
func ZerosPenaltySeller(mercantil, cdc, services float64) float64 {
	zeros := 0
	for _, v := range []float64{mercantil, cdc, services} {
		if v == 0 {
			zeros++
		}
	}

	switch zeros {
	case 0:
		return 0
	case 1:
		return 8
	case 2:
		return 18
	default:
		return 30
	}
}

// TeamZeroPenalty penaliza a loja quando uma fração relevante do time zera
// algum pilar: considera o pior pilar (maior fração de vendedores zerados)
func TeamZeroPenalty(sellers []domain.Seller) float64 {
	if len(sellers) == 0 {
		return 0
	}

	total := float64(len(sellers))
	var zeroMerc, zeroCDC, zeroServ float64
	for _, s := range sellers {
		if s.Pillars.Mercantil.Realized == 0 {
			zeroMerc++
		}
		if s.Pillars.CDC.Realized == 0 {
			zeroCDC++
		}
		if s.Pillars.Services.Realized == 0 {
			zeroServ++
		}
	}

	maxPct := math.Max(zeroMerc, math.Max(zeroCDC, zeroServ)) / total
	switch {
	case maxPct > 0.50:
		return 18
	case maxPct > 0.30:
		return 10
	default:
		return 0
	}
}

// SortSellersByMercantil retorna uma cópia ordenada por realizado mercantil
// decrescente, o critério de ranking bruto usado em dependência e comparativos
func SortSellersByMercantil(sellers []domain.Seller) []domain.Seller {
	sorted := make([]domain.Seller, len(sellers))
	copy(sorted, sellers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pillars.Mercantil.Realized > sorted[j].Pillars.Mercantil.Realized
	})
	return sorted
}

// PeriodScoreStore calcula o score da loja no período: base ponderada menos
// as penalidades de spread, dependência e zeros do time, limitado a [0, 100]
func PeriodScoreStore(store domain.Store, sellers []domain.Seller) float64 {
	noteMerc := PillarNote(store.Pillars.Mercantil.Realized, store.Pillars.Mercantil.Meta)
	noteCDC := PillarNote(store.Pillars.CDC.Realized, store.Pillars.CDC.Meta)
	noteServ := PillarNote(store.Pillars.Services.Realized, store.Pillars.Services.Meta)

	base := ScoreBase(noteMerc, noteCDC, noteServ)
	penSpread := SpreadPenalty(noteMerc, noteCDC, noteServ)

	sorted := SortSellersByMercantil(sellers)
	var top1, top2 float64
	if len(sorted) > 0 {
		top1 = sorted[0].Pillars.Mercantil.Realized
	}
	if len(sorted) > 1 {
		top2 = sorted[1].Pillars.Mercantil.Realized
	}
	penDep := DependencyPenalty(top1, top2, store.Pillars.Mercantil.Realized)

	penTeamZero := TeamZeroPenalty(sellers)

	return Clamp(base-penSpread-penDep-penTeamZero, 0, 100)
}

// PeriodScoreSeller calcula o score individual: mesma base ponderada da loja,
// mas penalizando apenas spread e pilares zerados do próprio vendedor
func PeriodScoreSeller(seller domain.Seller) float64 {
	noteMerc := PillarNote(seller.Pillars.Mercantil.Realized, seller.Pillars.Mercantil.Meta)
	noteCDC := PillarNote(seller.Pillars.CDC.Realized, seller.Pillars.CDC.Meta)
	noteServ := PillarNote(seller.Pillars.Services.Realized, seller.Pillars.Services.Meta)

	base := ScoreBase(noteMerc, noteCDC, noteServ)
	penSpread := SpreadPenalty(noteMerc, noteCDC, noteServ)
	penZeros := ZerosPenaltySeller(
		seller.Pillars.Mercantil.Realized,
		seller.Pillars.CDC.Realized,
		seller.Pillars.Services.Realized,
	)

	return Clamp(base-penSpread-penZeros, 0, 100)
}

// SeriesTrend classifica a tendência dos três últimos pontos de uma série
// longa: alta ou queda exigem três pontos estritamente monotônicos com
// variação acumulada de ao menos 5; o resto é volátil/estável.
// A regra de janela curta da inteligência de período é outra função
// (processing.TrendReading), com limiares próprios; as duas não se unificam
func SeriesTrend(values []float64) string {
	if len(values) < 3 {
		return "Volátil/Estável"
	}

	s1 := values[len(values)-3]
	s2 := values[len(values)-2]
	s3 := values[len(values)-1]

	if s1 < s2 && s2 < s3 && (s3-s1) >= 5 {
		return "Tendência de Alta"
	}
	if s1 > s2 && s2 > s3 && (s1-s3) >= 5 {
		return "Tendência de Queda"
	}
	return "Volátil/Estável"
}
