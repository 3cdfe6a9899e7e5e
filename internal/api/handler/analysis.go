package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/integrator/openai"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"github.com/vfg2006/oraculo-comercial-api/pkg/apiErrors"
)

// ExecutiveAnalysis gera a leitura executiva de um período processado
func ExecutiveAnalysis(narrator openai.Narrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data domain.OracleResult
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if data.Store.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da loja é obrigatório", nil)
			return
		}

		analysis, err := narrator.ExecutiveAnalysis(r.Context(), data)
		if err != nil {
			logrus.Error("Erro ao gerar leitura executiva:", err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao processar análise estratégica", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"analysis": analysis}); err != nil {
			logrus.Error("Erro ao enviar resposta da leitura executiva:", err)
		}
	}
}

// StrategicDiagnosis gera o diagnóstico de 6 blocos a partir de um comparativo
func StrategicDiagnosis(narrator openai.Narrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var comparison domain.ComparisonResult
		if err := json.NewDecoder(r.Body).Decode(&comparison); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(comparison.Store.Pillars) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Comparativo sem pilares calculados", nil)
			return
		}

		diagnosis, err := narrator.StrategicDiagnosis(r.Context(), comparison)
		if err != nil {
			logrus.Error("Erro ao gerar diagnóstico estratégico:", err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao processar o diagnóstico estratégico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"diagnosis": diagnosis}); err != nil {
			logrus.Error("Erro ao enviar resposta do diagnóstico:", err)
		}
	}
}

type historyAnalysisRequest struct {
	Store   string             `json:"store"`
	Tipo    domain.PeriodType  `json:"tipo"`
	Current *domain.OracleData `json:"current"`
}

// HistoryAnalysis gera o diagnóstico estruturado do histórico global da loja
func HistoryAnalysis(narrator openai.Narrator, historyService history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req historyAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.Store == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da loja é obrigatório", nil)
			return
		}

		tipo := req.Tipo
		if tipo == "" {
			tipo = domain.PeriodMonthly
		}

		report, err := historyService.Trend(req.Store, tipo, req.Current)
		if err != nil {
			logrus.Error("Erro ao montar série do histórico:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar série do histórico", nil)
			return
		}

		if len(report.Points) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nenhum ciclo encontrado para análise", nil)
			return
		}

		analysis, err := narrator.HistoryAnalysis(r.Context(), *report)
		if err != nil {
			logrus.Error("Erro ao gerar análise do histórico:", err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao processar análise do histórico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			logrus.Error("Erro ao enviar resposta da análise do histórico:", err)
		}
	}
}
