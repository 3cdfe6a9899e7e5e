package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	clientmocks "github.com/vfg2006/oraculo-comercial-api/infrastructure/integrator/openai/openaiclient/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/config"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"go.uber.org/mock/gomock"
)

func executiveResult() domain.OracleResult {
	return domain.OracleResult{
		Store: domain.Store{
			Name: "Loja Centro",
			Period: domain.Period{
				Type:  domain.PeriodMonthly,
				Month: 5,
				Year:  2025,
			},
			HealthIndex:    92,
			Classification: "Alta Performance Sustentável",
			TripleCrownStatus: domain.TripleCrownStatus{
				Mercantil: true,
				CDC:       true,
				Services:  true,
			},
			Pillars: domain.StorePillars{
				Operational: domain.OperationalIndicators{
					Cards:  domain.OperationalIndicator{Achievement: 110},
					Combos: domain.OperationalIndicator{Achievement: 90},
				},
			},
		},
		Distribution: domain.Distribution{
			Top1Contribution: 35,
			DependencyLevel:  "Alta",
		},
		MaturityIndex: domain.MaturityIndex{
			Above100Percent: 60,
			Classification:  "Maturidade Moderada",
		},
		Projection: domain.Projection{
			IsAvailable:        true,
			MercantilProjected: 105,
			CDCProjected:       98,
			ServicesProjected:  101,
		},
	}
}

func TestOpenAIIntegrator_ExecutiveAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, mockClient)

	t.Run("Prompt carrega apenas indicadores derivados", func(t *testing.T) {
		mockClient.EXPECT().
			ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), false).
			DoAndReturn(func(_ context.Context, system, user string, _ bool) (string, error) {
				assert.Contains(t, system, "Oráculo Comercial")
				assert.Contains(t, user, "Loja Centro")
				assert.Contains(t, user, "Maio/2025")
				assert.Contains(t, user, "Tríplice Coroa: Consolidada")
				assert.Contains(t, user, "Saúde da Loja: 92.00% (Alta Performance Sustentável)")
				assert.Contains(t, user, "Execução Operacional (Cartões/Combos): 100.0%")
				return "## Resumo Executivo", nil
			})

		text, err := integrator.ExecutiveAnalysis(context.Background(), executiveResult())

		assert.NoError(t, err)
		assert.Equal(t, "## Resumo Executivo", text)
	})

	t.Run("Coroa pendente quando algum pilar fica abaixo de 100", func(t *testing.T) {
		result := executiveResult()
		result.Store.TripleCrownStatus.Services = false

		mockClient.EXPECT().
			ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), false).
			DoAndReturn(func(_ context.Context, _, user string, _ bool) (string, error) {
				assert.Contains(t, user, "Tríplice Coroa: Pendente")
				return "ok", nil
			})

		_, err := integrator.ExecutiveAnalysis(context.Background(), result)
		assert.NoError(t, err)
	})

	t.Run("Falha do cliente é propagada", func(t *testing.T) {
		clientErr := errors.New("timeout")
		mockClient.EXPECT().
			ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), false).
			Return("", clientErr)

		text, err := integrator.ExecutiveAnalysis(context.Background(), executiveResult())

		assert.ErrorIs(t, err, clientErr)
		assert.Empty(t, text)
	})
}

func TestOpenAIIntegrator_StrategicDiagnosis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, mockClient)

	comparison := domain.ComparisonResult{
		Store: domain.StoreComparison{
			Pillars: []domain.PillarComparison{
				{Name: "Mercantil", DeltaPercent: -10, BaseICM: 100, CurrentICM: 90},
				{Name: "CDC", DeltaPercent: 5, BaseICM: 95, CurrentICM: 99.8},
				{Name: "Services", DeltaPercent: 0, BaseICM: 100, CurrentICM: 100},
			},
			DeltaScore: -7.5,
			Top2Share:  0.62,
		},
		Sellers: []domain.SellerComparison{
			{Name: "Ana", DeltaRank: 2},
			{Name: "Bruno", DeltaRank: -1},
		},
	}

	mockClient.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(_ context.Context, system, user string, _ bool) (string, error) {
			assert.Contains(t, system, "6 blocos obrigatórios")
			assert.Contains(t, user, "Crescimento Mercantil: -10,0%")
			assert.Contains(t, user, "ICM CDC: Base 95.0% / Atual 99.8%")
			assert.Contains(t, user, "Índice de Dependência (Top 2 Share): 62,0%")
			assert.Contains(t, user, "Variação Score Global: -7.5 pts")
			assert.Contains(t, user, "Ana: +2")
			assert.Contains(t, user, "Bruno: -1")
			return "1) STATUS DO CICLO", nil
		})

	text, err := integrator.StrategicDiagnosis(context.Background(), comparison)

	assert.NoError(t, err)
	assert.Equal(t, "1) STATUS DO CICLO", text)
}

func TestOpenAIIntegrator_HistoryAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, mockClient)

	report := history.TrendReport{
		Points: []domain.HistoryPoint{
			{Label: "Março/2025", Score: 78, Dependency: 41, MercantilICM: 82, CDCICM: 75, ServicesICM: 80},
			{Label: "Abril/2025", Score: 84, Dependency: 38, MercantilICM: 88, CDCICM: 81, ServicesICM: 86},
		},
		ScoreTrend:      "Volátil/Estável",
		DependencyTrend: "Volátil/Estável",
	}

	t.Run("Resposta JSON decodificada no contrato tipado", func(t *testing.T) {
		response := `{
			"classificacao_ciclo": "Em Recuperação",
			"nivel_alerta": "atencao",
			"score_atual": 84,
			"dependencia_atual": 38,
			"indice_risco_estrutural": 45,
			"indice_consistencia": 70,
			"projecao_proximo_ciclo": 87,
			"interno": {"status_ciclo": "Recuperação gradual", "frase_final": "Sustentar o ritmo."},
			"executivo": {"situacao": "Em recuperação", "acao_imediata": "Reduzir dependência."}
		}`

		mockClient.EXPECT().
			ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), true).
			DoAndReturn(func(_ context.Context, _, user string, jsonMode bool) (string, error) {
				assert.True(t, jsonMode)
				assert.Contains(t, user, "(2 ciclos)")
				assert.Contains(t, user, "- Março/2025: Score 78.0 / Dep 41.0%")
				assert.Contains(t, user, "- Abril/2025: Score 84.0 / Dep 38.0%")
				return response, nil
			})

		analysis, err := integrator.HistoryAnalysis(context.Background(), report)

		assert.NoError(t, err)
		assert.Equal(t, "Em Recuperação", analysis.ClassificacaoCiclo)
		assert.Equal(t, "atencao", analysis.NivelAlerta)
		assert.Equal(t, 84.0, analysis.ScoreAtual)
		assert.Equal(t, "Recuperação gradual", analysis.Interno.StatusCiclo)
		assert.Equal(t, "Reduzir dependência.", analysis.Executivo.AcaoImediata)
	})

	t.Run("Histórico vazio - erro sem chamada externa", func(t *testing.T) {
		analysis, err := integrator.HistoryAnalysis(context.Background(), history.TrendReport{})

		assert.Error(t, err)
		assert.Nil(t, analysis)
	})

	t.Run("Resposta fora do contrato JSON - erro de decodificação", func(t *testing.T) {
		mockClient.EXPECT().
			ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), true).
			Return("não sou um JSON", nil)

		analysis, err := integrator.HistoryAnalysis(context.Background(), report)

		assert.Error(t, err)
		assert.Nil(t, analysis)
	})
}
