// Package processing implementa o Processador de Período: recebe os números
// brutos de um período (loja + vendedores) e uma janela curta de snapshots
// anteriores e devolve o OracleResult com todos os campos derivados
package processing

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/scoring"
	"github.com/vfg2006/oraculo-comercial-api/pkg/utils"
)

// HistoryWindow é o número máximo de períodos anteriores considerados
// pelo bloco de inteligência
const HistoryWindow = 3

type Processor interface {
	Process(data domain.OracleData, history []domain.HistoryRecord) (*domain.OracleResult, error)
}

type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Process calcula todos os campos derivados do período. A entrada nunca é
// mutada; qualquer pânico interno é recuperado e devolvido como erro genérico
// para que uma falha de cálculo jamais derrube a aplicação
func (s *Service) Process(data domain.OracleData, history []domain.HistoryRecord) (result *domain.OracleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("Erro inesperado ao processar o período")
			result = nil
			err = fmt.Errorf("não foi possível calcular o período: %v", r)
		}
	}()

	out := data
	out.Sellers = make([]domain.Seller, len(data.Sellers))
	copy(out.Sellers, data.Sellers)

	// 1. Rótulo do período e timestamp de geração
	out.Store.Period.Label = out.Store.Period.GenerateLabel()
	out.GeneratedAt = s.now().UTC().Format(time.RFC3339)

	// 2. Pilares da loja
	processStorePillars(&out.Store)

	// 3. Saúde da loja
	out.Store.HealthIndex = scoring.CompositeIndex(
		out.Store.Pillars.Mercantil.ICM,
		out.Store.Pillars.CDC.ICM,
		out.Store.Pillars.Services.ICM,
	)
	out.Store.Classification = scoring.ClassifyHealth(out.Store.HealthIndex)

	// 4. Tríplice coroa da loja
	out.Store.TripleCrownStatus = domain.TripleCrownStatus{
		Mercantil: out.Store.Pillars.Mercantil.ICM >= 100,
		CDC:       out.Store.Pillars.CDC.ICM >= 100,
		Services:  out.Store.Pillars.Services.ICM >= 100,
	}

	// 5. Vendedores
	for i := range out.Sellers {
		processSeller(&out.Sellers[i])
	}

	// 6/7/8. Distribuição, MVP e maturidade do time
	processDistribution(&out)
	processMaturity(&out)

	// 9. Projeção de fechamento
	out.Projection = buildProjection(out.Store)

	// 10. Inteligência (exige contexto histórico para as tendências)
	window := sortWindow(history)
	buildIntelligence(&out, window)

	return &out, nil
}

func processPillar(p *domain.Pillar) {
	p.ICM = scoring.ICM(p.Realized, p.Meta)
	p.Gap = scoring.Gap(p.Meta, p.Realized)
}

func processStorePillars(store *domain.Store) {
	processPillar(&store.Pillars.Mercantil)

	processPillar(&store.Pillars.CDC.Pillar)
	store.Pillars.CDC.Participation.Achievement = scoring.ICM(
		store.Pillars.CDC.Participation.Realized,
		store.Pillars.CDC.Participation.Meta,
	)

	processPillar(&store.Pillars.Services.Pillar)
	store.Pillars.Services.Efficiency.Achievement = scoring.ICM(
		store.Pillars.Services.Efficiency.Realized,
		store.Pillars.Services.Efficiency.Meta,
	)

	store.Pillars.Operational.Cards.Achievement = scoring.ICM(
		store.Pillars.Operational.Cards.Realized,
		store.Pillars.Operational.Cards.Meta,
	)
	store.Pillars.Operational.Combos.Achievement = scoring.ICM(
		store.Pillars.Operational.Combos.Realized,
		store.Pillars.Operational.Combos.Meta,
	)
}

func processSeller(seller *domain.Seller) {
	processPillar(&seller.Pillars.Mercantil)
	processPillar(&seller.Pillars.CDC)
	processPillar(&seller.Pillars.Services)

	seller.Operational.Cards.Achievement = scoring.ICM(
		seller.Operational.Cards.Realized,
		seller.Operational.Cards.Meta,
	)
	seller.Operational.Combos.Achievement = scoring.ICM(
		seller.Operational.Combos.Realized,
		seller.Operational.Combos.Meta,
	)

	seller.Score = scoring.PeriodScoreSeller(*seller)
	seller.Classification = scoring.ClassifySeller(seller.Score)
	seller.IsTripleCrown = seller.Pillars.Mercantil.ICM >= 100 &&
		seller.Pillars.CDC.ICM >= 100 &&
		seller.Pillars.Services.ICM >= 100
}

// sortSellersByScore retorna uma cópia ordenada por score decrescente
func sortSellersByScore(sellers []domain.Seller) []domain.Seller {
	sorted := make([]domain.Seller, len(sellers))
	copy(sorted, sellers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

func processDistribution(out *domain.OracleResult) {
	if len(out.Sellers) == 0 {
		return
	}

	sorted := sortSellersByScore(out.Sellers)

	var totalScore float64
	for _, s := range out.Sellers {
		totalScore += s.Score
	}

	if totalScore > 0 {
		out.Distribution.Top1Contribution = utils.RoundWithTwoDecimalPlace((sorted[0].Score / totalScore) * 100)
		if len(out.Sellers) > 1 {
			out.Distribution.Top2Contribution = utils.RoundWithTwoDecimalPlace(((sorted[0].Score + sorted[1].Score) / totalScore) * 100)
		} else {
			out.Distribution.Top2Contribution = out.Distribution.Top1Contribution
		}
	}

	switch {
	case out.Distribution.Top1Contribution > 40:
		out.Distribution.DependencyLevel = "Crítica"
	case out.Distribution.Top1Contribution > 30:
		out.Distribution.DependencyLevel = "Alta"
	case out.Distribution.Top1Contribution > 20:
		out.Distribution.DependencyLevel = "Moderada"
	default:
		out.Distribution.DependencyLevel = "Saudável"
	}

	mvp := sorted[0]
	out.MVPID = mvp.ID
	out.MVPJustification = fmt.Sprintf(
		"%s atingiu o Score mais alto da operação (%.1f%%), demonstrando o melhor equilíbrio entre os pilares estratégicos e maior impacto no resultado global.",
		mvp.Name, mvp.Score,
	)
}

func processMaturity(out *domain.OracleResult) {
	if len(out.Sellers) == 0 {
		return
	}

	var above100, below80 float64
	for _, s := range out.Sellers {
		if s.Score >= 100 {
			above100++
		}
		if s.Score < 80 {
			below80++
		}
	}

	total := float64(len(out.Sellers))
	out.MaturityIndex.Above100Percent = (above100 / total) * 100
	out.MaturityIndex.Below80Percent = (below80 / total) * 100

	switch {
	case out.MaturityIndex.Above100Percent >= 70:
		out.MaturityIndex.Classification = "Alta Maturidade"
	case out.MaturityIndex.Above100Percent >= 40:
		out.MaturityIndex.Classification = "Maturidade Moderada"
	default:
		out.MaturityIndex.Classification = "Baixa Maturidade"
	}
}

func buildProjection(store domain.Store) domain.Projection {
	period := store.Period

	if period.BusinessDaysTotal <= 0 {
		return domain.Projection{
			IsAvailable: false,
			Probability: "Dados insuficientes",
		}
	}

	var factor float64
	if period.BusinessDaysElapsed > 0 {
		factor = float64(period.BusinessDaysTotal) / float64(period.BusinessDaysElapsed)
	}

	projection := domain.Projection{
		IsAvailable:        true,
		MercantilProjected: store.Pillars.Mercantil.Realized * factor,
		CDCProjected:       store.Pillars.CDC.Realized * factor,
		ServicesProjected:  store.Pillars.Services.Realized * factor,
	}
	projection.MercantilGap = store.Pillars.Mercantil.Meta - projection.MercantilProjected
	projection.CDCGap = store.Pillars.CDC.Meta - projection.CDCProjected
	projection.ServicesGap = store.Pillars.Services.Meta - projection.ServicesProjected

	if period.BusinessDaysElapsed <= 0 {
		projection.Probability = "Planejamento"
		return projection
	}

	projectedICM := scoring.ScoreICM(projection.MercantilProjected, store.Pillars.Mercantil.Meta)*scoring.WeightMercantil +
		scoring.ScoreICM(projection.CDCProjected, store.Pillars.CDC.Meta)*scoring.WeightCDC +
		scoring.ScoreICM(projection.ServicesProjected, store.Pillars.Services.Meta)*scoring.WeightServices

	switch {
	case projectedICM >= 100:
		projection.Probability = "Alta"
	case projectedICM >= 90:
		projection.Probability = "Média"
	default:
		projection.Probability = "Baixa"
	}

	return projection
}

// sortWindow ordena os snapshots do mais antigo para o mais novo e limita
// ao tamanho da janela, aceitando que o chamador envie em qualquer ordem
func sortWindow(history []domain.HistoryRecord) []domain.HistoryRecord {
	window := make([]domain.HistoryRecord, len(history))
	copy(window, history)

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].Dados.Store.Period.ReferenceDate().
			Before(window[j].Dados.Store.Period.ReferenceDate())
	})

	if len(window) > HistoryWindow {
		window = window[len(window)-HistoryWindow:]
	}

	return window
}
