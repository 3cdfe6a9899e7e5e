package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"github.com/vfg2006/oraculo-comercial-api/pkg/apiErrors"
)

// SaveHistory salva o resultado processado como snapshot do período.
// Um snapshot existente do mesmo período é sobrescrito
func SaveHistory(service history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var result domain.OracleResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		record, err := service.Save(result)
		if err != nil {
			if err == history.ErrInvalidPeriod {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Período sem data de referência válida", nil)
				return
			}
			logrus.Error("Erro ao salvar snapshot:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar snapshot", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(record); err != nil {
			logrus.Error("Erro ao enviar resposta do snapshot salvo:", err)
		}
	}
}

// GetHistory retorna os snapshots de uma loja separados por tipo de período
func GetHistory(service history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeName := r.URL.Query().Get("store")
		if storeName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro store é obrigatório", nil)
			return
		}

		container, err := service.GetByStore(storeName)
		if err != nil {
			logrus.Error("Erro ao buscar histórico da loja:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico da loja", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(container); err != nil {
			logrus.Error("Erro ao enviar resposta do histórico:", err)
		}
	}
}

// DeleteHistory remove um snapshot pelo ID
func DeleteHistory(service history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do snapshot não especificado", nil)
			return
		}

		if err := service.Delete(id); err != nil {
			if err == history.ErrRecordNotFound {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Snapshot não encontrado: "+id, nil)
				return
			}
			logrus.Error("Erro ao remover snapshot:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover snapshot", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetHistoryTrend retorna a série temporal da loja com as leituras de
// tendência por indicador
func GetHistoryTrend(service history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeName := r.URL.Query().Get("store")
		if storeName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro store é obrigatório", nil)
			return
		}

		tipo := domain.PeriodType(r.URL.Query().Get("tipo"))
		if tipo == "" {
			tipo = domain.PeriodMonthly
		}

		report, err := service.Trend(storeName, tipo, nil)
		if err != nil {
			logrus.Error("Erro ao calcular tendência do histórico:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular tendência do histórico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error("Erro ao enviar resposta da tendência:", err)
		}
	}
}
