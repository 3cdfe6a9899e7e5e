package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/comparing"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/processing"
	"go.uber.org/mock/gomock"
)

func monthlyOracleData(storeName string, pct float64) domain.OracleData {
	return domain.OracleData{
		Store: domain.Store{
			Name: storeName,
			Period: domain.Period{
				Type:                domain.PeriodMonthly,
				Month:               5,
				Year:                2025,
				BusinessDaysTotal:   20,
				BusinessDaysElapsed: 10,
			},
			Pillars: domain.StorePillars{
				Mercantil: domain.Pillar{Meta: 100000, Realized: 100000 * pct / 100},
				CDC:       domain.CDCPillar{Pillar: domain.Pillar{Meta: 50000, Realized: 50000 * pct / 100}},
				Services:  domain.ServicesPillar{Pillar: domain.Pillar{Meta: 30000, Realized: 30000 * pct / 100}},
			},
		},
	}
}

func TestProcessOracle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	historyService := history.NewService(mockRepo)
	processor := processing.NewService()

	t.Run("Período válido - resultado com campos derivados", func(t *testing.T) {
		mockRepo.EXPECT().
			ListRecent("Loja Centro", domain.PeriodMonthly, gomock.Any()).
			Return(nil, nil)

		body, _ := json.Marshal(monthlyOracleData("Loja Centro", 100))
		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/process", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		ProcessOracle(processor, historyService)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.OracleResult
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, 100.0, result.Store.HealthIndex)
		assert.Equal(t, "Maio/2025", result.Store.Period.Label)
		assert.True(t, result.Store.TripleCrownStatus.Mercantil)
	})

	t.Run("Sem nome da loja - 400", func(t *testing.T) {
		body, _ := json.Marshal(monthlyOracleData("", 100))
		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/process", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		ProcessOracle(processor, historyService)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_002")
	})

	t.Run("Corpo inválido - 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/process", bytes.NewReader([]byte("{invalido")))
		rec := httptest.NewRecorder()

		ProcessOracle(processor, historyService)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_003")
	})
}

func TestCompareOracle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	historyService := history.NewService(mockRepo)
	comparator := comparing.NewService()

	t.Run("Snapshot salvo contra período em edição", func(t *testing.T) {
		saved := &domain.HistoryRecord{
			ID:    "LOJACENTRO-2025-MONTHLY-04",
			Tipo:  domain.PeriodMonthly,
			Dados: monthlyOracleData("Loja Centro", 100),
		}
		mockRepo.EXPECT().GetByID("LOJACENTRO-2025-MONTHLY-04").Return(saved, nil)

		current := monthlyOracleData("Loja Centro", 90)
		body, _ := json.Marshal(map[string]any{
			"periodAId": "LOJACENTRO-2025-MONTHLY-04",
			"periodBId": "current",
			"current":   current,
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/compare", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		CompareOracle(comparator, historyService)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.ComparisonResult
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, "LOJACENTRO-2025-MONTHLY-04", result.PeriodA)
		assert.Equal(t, "current", result.PeriodB)
		assert.Equal(t, "Regressão", result.Store.Classification)
	})

	t.Run("Período não encontrado - 400", func(t *testing.T) {
		mockRepo.EXPECT().GetByID("inexistente").Return(nil, nil)

		body, _ := json.Marshal(map[string]any{
			"periodAId": "inexistente",
			"periodBId": "current",
			"current":   monthlyOracleData("Loja Centro", 90),
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/compare", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		CompareOracle(comparator, historyService)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "inexistente")
	})

	t.Run("Período em edição sem dados - 400", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"periodAId": "current",
			"periodBId": "current",
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/compare", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		CompareOracle(comparator, historyService)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_002")
	})

	t.Run("IDs ausentes - 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oracle/compare", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()

		CompareOracle(comparator, historyService)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
