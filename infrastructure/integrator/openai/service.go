// Package openai gera as narrativas estratégicas do Oráculo Comercial a
// partir dos indicadores já calculados. Apenas números derivados entram nos
// prompts, nunca os lançamentos brutos
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/oraculo-comercial-api/internal/config"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"github.com/vfg2006/oraculo-comercial-api/pkg/utils"
)

// Narrator é a interface consumida pelos handlers de análise
type Narrator interface {
	ExecutiveAnalysis(ctx context.Context, data domain.OracleResult) (string, error)
	StrategicDiagnosis(ctx context.Context, comparison domain.ComparisonResult) (string, error)
	HistoryAnalysis(ctx context.Context, report history.TrendReport) (*domain.HistoryAnalysis, error)
}

type OpenAIIntegrator struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) *OpenAIIntegrator {
	return &OpenAIIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

const executiveSystemPrompt = `Você é o Oráculo Comercial, um sistema de inteligência estratégica de alta performance.
Gere uma leitura executiva fria, técnica e direta a partir dos dados recebidos.

REGRAS DE ANÁLISE:
1. Identifique se o cenário é de "Crescimento Saudável", "Risco de Concentração" ou "Erosão de Margem".
2. Avalie o equilíbrio entre os pilares (Mercantil, CDC, Serviços).
3. Analise se a execução operacional (Cartões/Combos) está acompanhando a saúde financeira.
4. Projete o fechamento com base na tendência atual.

REGRAS DE SAÍDA:
1. Resumo Executivo (máximo 3 parágrafos).
2. Regional Preview (foco em resultados e tendências).
3. Blindagem Estratégica (ações preventivas imediatas).
4. Ajuste Estrutural Recomendado (foco em pessoas e processos).
5. Use tom profissional, técnico e direto. Sem motivação genérica.
6. Formate em Markdown.`

// ExecutiveAnalysis gera a leitura executiva de um período processado
func (s *OpenAIIntegrator) ExecutiveAnalysis(ctx context.Context, data domain.OracleResult) (string, error) {
	crown := "Pendente"
	if data.Store.TripleCrownStatus.Mercantil &&
		data.Store.TripleCrownStatus.CDC &&
		data.Store.TripleCrownStatus.Services {
		crown = "Consolidada"
	}

	operational := (data.Store.Pillars.Operational.Cards.Achievement +
		data.Store.Pillars.Operational.Combos.Achievement) / 2

	prompt := fmt.Sprintf(`Analise os seguintes dados da loja %s para o período de %s:

DADOS DA LOJA:
- Saúde da Loja: %.2f%% (%s)
- Tríplice Coroa: %s
- Execução Operacional (Cartões/Combos): %.1f%%
- Projeção Mensal: Mercantil %.1f%%, CDC %.1f%%, Serviços %.1f%%
- Gap Projetado: Mercantil %s, CDC %s, Serviços %s
- Dependência: %s (Concentração Top 1: %.1f%%)
- Maturidade do Time: %s (%.1f%% acima de 100%%)`,
		data.Store.Name,
		data.Store.Period.GenerateLabel(),
		data.Store.HealthIndex,
		data.Store.Classification,
		crown,
		operational,
		data.Projection.MercantilProjected,
		data.Projection.CDCProjected,
		data.Projection.ServicesProjected,
		utils.FormatCurrencyBR(data.Projection.MercantilGap),
		utils.FormatCurrencyBR(data.Projection.CDCGap),
		utils.FormatCurrencyBR(data.Projection.ServicesGap),
		data.Distribution.DependencyLevel,
		data.Distribution.Top1Contribution,
		data.MaturityIndex.Classification,
		data.MaturityIndex.Above100Percent,
	)

	text, err := s.Client.ChatCompletion(ctx, executiveSystemPrompt, prompt, false)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"store": data.Store.Name,
			"error": err.Error(),
		}).Error("narrative: falha ao gerar leitura executiva")
		return "", err
	}

	return text, nil
}

const diagnosisSystemPrompt = `Você é o motor de Diagnóstico Estratégico do Oráculo Comercial.
Sua função é analisar dois períodos (Base A vs Atual B) e gerar um diagnóstico técnico + provocativo, com foco em execução comercial.

Você deve gerar o diagnóstico em 6 blocos obrigatórios:
1) STATUS DO CICLO
2) LEITURA ESTRATÉGICA DA UNIDADE
3) ESTRUTURA DO TIME
4) PONTO DE PRESSÃO
5) AÇÃO IMEDIATA
6) FRASE FINAL

Tom: técnico, estratégico e provocativo. Sem emojis. Sem floreios. Sem narrativa motivacional vazia.
Fundamente sempre nos números recebidos.`

// StrategicDiagnosis gera o diagnóstico de 6 blocos a partir de um comparativo
func (s *OpenAIIntegrator) StrategicDiagnosis(ctx context.Context, comparison domain.ComparisonResult) (string, error) {
	pillar := func(name string) domain.PillarComparison {
		for _, p := range comparison.Store.Pillars {
			if p.Name == name {
				return p
			}
		}
		return domain.PillarComparison{Name: name}
	}
	merc := pillar("Mercantil")
	cdc := pillar("CDC")
	serv := pillar("Services")

	ranks := make([]string, 0, len(comparison.Sellers))
	for _, seller := range comparison.Sellers {
		sign := ""
		if seller.DeltaRank > 0 {
			sign = "+"
		}
		ranks = append(ranks, fmt.Sprintf("%s: %s%d", seller.Name, sign, seller.DeltaRank))
	}

	prompt := fmt.Sprintf(`Analise os seguintes dados da unidade:
- Crescimento Mercantil: %s
- Crescimento CDC: %s
- Crescimento Services: %s
- ICM Mercantil: Base %.1f%% / Atual %.1f%%
- ICM CDC: Base %.1f%% / Atual %.1f%%
- ICM Services: Base %.1f%% / Atual %.1f%%
- Índice de Dependência (Top 2 Share): %s
- Variação Score Global: %.1f pts
- Movimentação de Ranking: %s

Gere o diagnóstico estratégico conforme as regras de 6 blocos obrigatórios.`,
		utils.FormatPercentBR(merc.DeltaPercent),
		utils.FormatPercentBR(cdc.DeltaPercent),
		utils.FormatPercentBR(serv.DeltaPercent),
		merc.BaseICM, merc.CurrentICM,
		cdc.BaseICM, cdc.CurrentICM,
		serv.BaseICM, serv.CurrentICM,
		utils.FormatPercentBR(comparison.Store.Top2Share*100),
		comparison.Store.DeltaScore,
		strings.Join(ranks, ", "),
	)

	text, err := s.Client.ChatCompletion(ctx, diagnosisSystemPrompt, prompt, false)
	if err != nil {
		logrus.WithError(err).Error("narrative: falha ao gerar diagnóstico estratégico")
		return "", err
	}

	return text, nil
}

const historySystemPrompt = `Você é o Motor Avançado de Inteligência do Histórico Global do Oráculo Comercial.
Sua função é interpretar TODOS os ciclos lançados no sistema e gerar um diagnóstico estratégico completo.

Você deve retornar um objeto JSON com os campos: classificacao_ciclo, nivel_alerta,
score_atual, dependencia_atual, indice_risco_estrutural, indice_consistencia,
projecao_proximo_ciclo, interno (status_ciclo, tendencia_score, raio_x_pilares,
evolucao_dependencia, maturidade_operacional, conclusao_estrategica, frase_final) e
executivo (situacao, causa_principal, risco, acao_imediata, frase_final).

REGRAS DE CLASSIFICAÇÃO DO CICLO:
Se score_atual < 75 → classificacao_ciclo = "Instável"
Se score_atual entre 75 e 85 → "Em Recuperação"
Se score_atual entre 85 e 95 → "Sustentável"
Se score_atual > 95 → "Em Expansão"

REGRAS DE NÍVEL DE ALERTA:
Se score_atual < 75 → nivel_alerta = "critico"
Se score_atual entre 75 e 85 → "atencao"
Se score_atual > 85 → "saudavel"

ÍNDICE DE RISCO ESTRUTURAL (0 a 100):
Basear em: Dependência acima de 40% aumenta risco; Pilar abaixo de 85% aumenta risco; Alta volatilidade entre ciclos aumenta risco.

ÍNDICE DE CONSISTÊNCIA (0 a 100):
Calcular com base na variação entre os scores dos ciclos. Alta oscilação = baixa consistência.

PROJEÇÃO PRÓXIMO CICLO:
Estimar tendência com base na direção dos dois últimos ciclos. Não inventar crescimento artificial.

REGRAS DA ANÁLISE INTERNA:
- Linguagem técnica e analítica. Identificar causa estrutural. Relacionar dependência com risco. Comparar ciclos. Sem emojis.

REGRAS DA ANÁLISE EXECUTIVA:
- Linguagem direta e estratégica. Frases curtas. Foco em decisão. 1 causa principal clara. 1 ação imediata clara.

Regras Gerais:
- Basear-se apenas nos dados enviados. Não inventar números.
- Não repetir texto entre interno e executivo.`

// HistoryAnalysis gera o diagnóstico estruturado do histórico global e
// decodifica o JSON retornado no contrato tipado
func (s *OpenAIIntegrator) HistoryAnalysis(ctx context.Context, report history.TrendReport) (*domain.HistoryAnalysis, error) {
	if len(report.Points) == 0 {
		return nil, fmt.Errorf("histórico vazio, nada a analisar")
	}

	var avgMerc, avgCDC, avgServ float64
	cycles := make([]string, 0, len(report.Points))
	for _, p := range report.Points {
		avgMerc += p.MercantilICM
		avgCDC += p.CDCICM
		avgServ += p.ServicesICM
		cycles = append(cycles, fmt.Sprintf("- %s: Score %.1f / Dep %.1f%%", p.Label, p.Score, p.Dependency))
	}
	total := float64(len(report.Points))
	avgMerc /= total
	avgCDC /= total
	avgServ /= total

	prompt := fmt.Sprintf(`Analise o histórico global da unidade (%d ciclos):
- Tendência de Score: %s
- Tendência de Dependência: %s
- Médias Históricas (ICM): Mercantil %.1f%%, CDC %.1f%%, Services %.1f%%
- Lista de Ciclos (Score / Dependência):
%s

Gere as análises Interna e Executiva conforme as regras de blocos obrigatórios. Retorne apenas o JSON.`,
		len(report.Points),
		report.ScoreTrend,
		report.DependencyTrend,
		avgMerc, avgCDC, avgServ,
		strings.Join(cycles, "\n"),
	)

	text, err := s.Client.ChatCompletion(ctx, historySystemPrompt, prompt, true)
	if err != nil {
		logrus.WithError(err).Error("narrative: falha ao gerar análise do histórico")
		return nil, err
	}

	analysis := &domain.HistoryAnalysis{}
	if err := json.Unmarshal([]byte(text), analysis); err != nil {
		logrus.WithError(err).Error("narrative: resposta do histórico fora do contrato JSON")
		return nil, fmt.Errorf("erro ao decodificar análise do histórico: %w", err)
	}

	return analysis, nil
}
