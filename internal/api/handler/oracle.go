package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/comparing"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/processing"
	"github.com/vfg2006/oraculo-comercial-api/pkg/apiErrors"
)

// ProcessOracle recebe os lançamentos brutos de um período e devolve o
// resultado com todos os campos derivados calculados. A janela de histórico
// da loja é carregada automaticamente quando existem snapshots salvos
func ProcessOracle(processor processing.Processor, historyService history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data domain.OracleData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if data.Store.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da loja é obrigatório", nil)
			return
		}

		window, err := historyService.RecentWindow(data.Store.Name, data.Store.Period.Type)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"store": data.Store.Name,
				"error": err.Error(),
			}).Warn("Erro ao carregar janela de histórico, processando sem histórico")
			window = nil
		}

		result, err := processor.Process(data, window)
		if err != nil {
			logrus.Error("Erro ao processar o período:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar o período", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta do processamento:", err)
		}
	}
}

type compareRequest struct {
	PeriodAID string             `json:"periodAId"`
	PeriodBID string             `json:"periodBId"`
	Current   *domain.OracleData `json:"current"`
}

// CompareOracle compara dois períodos. Cada lado pode ser um snapshot salvo
// (pelo ID) ou os dados em edição quando o ID é "current"
func CompareOracle(comparator comparing.Comparator, historyService history.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.PeriodAID == "" || req.PeriodBID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Os dois períodos são obrigatórios", nil)
			return
		}

		dataA, ok := resolvePeriod(w, historyService, req.PeriodAID, req.Current)
		if !ok {
			return
		}

		dataB, ok := resolvePeriod(w, historyService, req.PeriodBID, req.Current)
		if !ok {
			return
		}

		result, err := comparator.Compare(req.PeriodAID, req.PeriodBID, *dataA, *dataB)
		if err != nil {
			logrus.Error("Erro ao gerar o comparativo:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o comparativo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta do comparativo:", err)
		}
	}
}

// resolvePeriod carrega o snapshot pelo ID ou usa os dados em edição quando o
// ID é o marcador de período atual. Escreve o erro na resposta quando falha
func resolvePeriod(w http.ResponseWriter, historyService history.HistoryService, periodID string, current *domain.OracleData) (*domain.OracleData, bool) {
	if periodID == history.CurrentPointID {
		if current == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados atuais não informados para o período em edição", nil)
			return nil, false
		}
		return current, true
	}

	record, err := historyService.GetRecord(periodID)
	if err != nil {
		if err == history.ErrRecordNotFound {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período não encontrado: "+periodID, nil)
			return nil, false
		}
		logrus.Error("Erro ao buscar snapshot do período:", err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshot do período", nil)
		return nil, false
	}

	return &record.Dados, true
}
