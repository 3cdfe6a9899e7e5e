// Package comparing implementa o Motor de Comparação: dado um período base
// (A) e um período atual (B), produz a tabela de deltas por pilar, a
// movimentação individual dos vendedores, os alertas e o resumo executivo
package comparing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/scoring"
	"github.com/vfg2006/oraculo-comercial-api/pkg/utils"
)

type Comparator interface {
	Compare(periodAID, periodBID string, dataA, dataB domain.OracleData) (*domain.ComparisonResult, error)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

var pillarNames = []string{"Mercantil", "CDC", "Services"}

func pillarByName(pillars domain.StorePillars, name string) domain.Pillar {
	switch name {
	case "CDC":
		return pillars.CDC.Pillar
	case "Services":
		return pillars.Services.Pillar
	default:
		return pillars.Mercantil
	}
}

func sellerPillarByName(pillars domain.SellerPillars, name string) domain.Pillar {
	switch name {
	case "CDC":
		return pillars.CDC
	case "Services":
		return pillars.Services
	default:
		return pillars.Mercantil
	}
}

// Compare monta o comparativo completo entre os dois períodos. O resultado é
// efêmero e recalculado a cada chamada; pânicos internos viram erro genérico
func (s *Service) Compare(periodAID, periodBID string, dataA, dataB domain.OracleData) (result *domain.ComparisonResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("Erro inesperado ao gerar o comparativo")
			result = nil
			err = fmt.Errorf("não foi possível gerar o comparativo: %v", r)
		}
	}()

	pillars := make([]domain.PillarComparison, 0, len(pillarNames))
	for _, name := range pillarNames {
		base := pillarByName(dataA.Store.Pillars, name)
		current := pillarByName(dataB.Store.Pillars, name)

		deltaValue := current.Realized - base.Realized
		pillars = append(pillars, domain.PillarComparison{
			Name:         name,
			BaseReal:     base.Realized,
			CurrentReal:  current.Realized,
			DeltaValue:   deltaValue,
			DeltaPercent: (deltaValue / math.Max(base.Realized, 1)) * 100,
			BaseICM:      scoring.ScoreICM(base.Realized, base.Meta),
			CurrentICM:   scoring.ScoreICM(current.Realized, current.Meta),
		})
	}

	baseScore := scoring.PeriodScoreStore(dataA.Store, dataA.Sellers)
	currentScore := scoring.PeriodScoreStore(dataB.Store, dataB.Sellers)
	deltaScore := currentScore - baseScore

	classification := "Estável"
	switch {
	case deltaScore >= 3:
		classification = "Evolução"
	case deltaScore <= -3:
		classification = "Regressão"
	}

	sellers := compareSellers(dataA, dataB)

	top2Share := top2MercantilShare(dataB)
	alerts := buildAlerts(pillars, top2Share)

	result = &domain.ComparisonResult{
		PeriodA: periodAID,
		PeriodB: periodBID,
		Store: domain.StoreComparison{
			Pillars:        pillars,
			BaseScore:      baseScore,
			CurrentScore:   currentScore,
			DeltaScore:     deltaScore,
			Classification: classification,
			Top2Share:      top2Share,
		},
		Sellers:          sellers,
		Alerts:           alerts,
		ExecutiveSummary: executiveSummary(classification, baseScore, currentScore, deltaScore),
	}

	return result, nil
}

// mercantilRank retorna a posição do vendedor no ranking por realizado
// mercantil bruto do período, ou 0 quando ausente
func mercantilRank(sellers []domain.Seller, name string) int {
	sorted := scoring.SortSellersByMercantil(sellers)
	for i, s := range sorted {
		if s.Name == name {
			return i + 1
		}
	}
	return 0
}

func compareSellers(dataA, dataB domain.OracleData) []domain.SellerComparison {
	comparisons := make([]domain.SellerComparison, 0, len(dataB.Sellers))

	for _, sellerB := range dataB.Sellers {
		var sellerA *domain.Seller
		for i := range dataA.Sellers {
			if dataA.Sellers[i].Name == sellerB.Name {
				sellerA = &dataA.Sellers[i]
				break
			}
		}

		var baseScore float64
		if sellerA != nil {
			baseScore = scoring.PeriodScoreSeller(*sellerA)
		}
		currentScore := scoring.PeriodScoreSeller(sellerB)

		baseRank := mercantilRank(dataA.Sellers, sellerB.Name)
		currentRank := mercantilRank(dataB.Sellers, sellerB.Name)

		alerts := make([]string, 0)
		if sellerA != nil {
			variation := (sellerB.Pillars.Mercantil.Realized - sellerA.Pillars.Mercantil.Realized) /
				math.Max(sellerA.Pillars.Mercantil.Realized, 1)
			if variation <= -0.05 {
				alerts = append(alerts, "Regressão > 5% no Mercantil")
			}
			if currentRank-baseRank >= 2 {
				alerts = append(alerts, "Queda de ranking >= 2 posições")
			}
		}

		pillars := make(map[string]domain.SellerPillarComparison, len(pillarNames))
		for _, name := range pillarNames {
			var base domain.Pillar
			if sellerA != nil {
				base = sellerPillarByName(sellerA.Pillars, name)
			}
			current := sellerPillarByName(sellerB.Pillars, name)

			pillars[strings.ToLower(name)] = domain.SellerPillarComparison{
				Base:       base.Realized,
				Current:    current.Realized,
				Delta:      current.Realized - base.Realized,
				BaseICM:    scoring.ScoreICM(base.Realized, base.Meta),
				CurrentICM: scoring.ScoreICM(current.Realized, current.Meta),
			}
		}

		deltaRank := 0
		if baseRank > 0 {
			deltaRank = baseRank - currentRank
		}

		comparisons = append(comparisons, domain.SellerComparison{
			ID:           sellerB.ID,
			Name:         sellerB.Name,
			BaseScore:    baseScore,
			CurrentScore: currentScore,
			DeltaScore:   currentScore - baseScore,
			BaseRank:     baseRank,
			CurrentRank:  currentRank,
			DeltaRank:    deltaRank,
			Alerts:       alerts,
			Pillars:      pillars,
		})
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].CurrentScore > comparisons[j].CurrentScore
	})

	return comparisons
}

// top2MercantilShare calcula a fatia dos dois maiores vendedores sobre o
// realizado mercantil da loja no período atual
func top2MercantilShare(data domain.OracleData) float64 {
	sorted := scoring.SortSellersByMercantil(data.Sellers)

	var top2 float64
	if len(sorted) > 0 {
		top2 += sorted[0].Pillars.Mercantil.Realized
	}
	if len(sorted) > 1 {
		top2 += sorted[1].Pillars.Mercantil.Realized
	}

	return top2 / math.Max(data.Store.Pillars.Mercantil.Realized, 1)
}

func buildAlerts(pillars []domain.PillarComparison, top2Share float64) []domain.EvolutionAlert {
	alerts := make([]domain.EvolutionAlert, 0)

	for _, p := range pillars {
		if p.DeltaPercent > -5 {
			continue
		}

		var action string
		switch p.Name {
		case "CDC":
			action = "Ação: reforçar CDC na apresentação, com meta diária de ativação por 7 dias e checagem no fechamento."
		case "Services":
			action = "Ação: padronizar anexação de serviços no fechamento e rodar rotina diária por 7 dias."
		default:
			action = "Ação: atacar conversão e mix, com plano de recuperação de perdas e foco em giro por 7 dias."
		}

		alerts = append(alerts, domain.EvolutionAlert{
			Type:   "A",
			Title:  fmt.Sprintf("Regressão no pilar %s", p.Name),
			Reason: fmt.Sprintf("O pilar %s apresentou queda de %s em relação ao período anterior.", p.Name, utils.FormatPercentBR(math.Abs(p.DeltaPercent))),
			Action: action,
		})
	}

	if top2Share > 0.30 {
		title := "Atenção: Concentração de Resultado"
		action := "Ação: elevar 2 vendedores intermediários ao nível de sustentação em 7 dias (meta +10 pts de ICM), com roteiro e acompanhamento."
		if top2Share > 0.50 {
			title = "Risco Alto de Dependência"
			action = "Ação: plano de redistribuição imediato: foco no terço médio + rotina diária de metas por pilar para reduzir dependência."
		}

		alerts = append(alerts, domain.EvolutionAlert{
			Type:   "C",
			Title:  title,
			Reason: fmt.Sprintf("Os 2 maiores vendedores concentram %s do faturamento mercantil.", utils.FormatPercentBR(top2Share*100)),
			Action: action,
		})
	}

	return alerts
}

func executiveSummary(classification string, baseScore, currentScore, deltaScore float64) string {
	direction := "Houve um ganho de eficiência operacional"
	if deltaScore < 0 {
		direction = "Houve uma perda de tração nos pilares"
	}

	return fmt.Sprintf(
		"A unidade apresenta um quadro de %s estratégica. O Score Final saiu de %.1f para %.1f. %s que impactou o resultado global. É necessário focar nas ações corretivas listadas abaixo para estabilizar a operação.",
		strings.ToLower(classification), baseScore, currentScore, direction,
	)
}
