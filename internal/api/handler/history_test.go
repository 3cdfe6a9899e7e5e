package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/history"
	"go.uber.org/mock/gomock"
)

func TestSaveHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := history.NewService(mockRepo)

	t.Run("Snapshot válido - 201 com chave composta", func(t *testing.T) {
		mockRepo.EXPECT().SaveOrUpdate("Loja Centro", gomock.Any()).Return(nil)

		body, _ := json.Marshal(monthlyOracleData("Loja Centro", 100))
		req := httptest.NewRequest(http.MethodPost, "/v1/history", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		SaveHistory(service)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var record domain.HistoryRecord
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
		assert.Equal(t, "LOJACENTRO-2025-MONTHLY-05", record.ID)
	})

	t.Run("Período sem data de referência - 400", func(t *testing.T) {
		data := monthlyOracleData("Loja Centro", 100)
		data.Store.Period = domain.Period{Type: domain.PeriodDaily, Date: "sem-data"}

		body, _ := json.Marshal(data)
		req := httptest.NewRequest(http.MethodPost, "/v1/history", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		SaveHistory(service)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_002")
	})
}

func TestGetHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := history.NewService(mockRepo)

	t.Run("Histórico separado por granularidade", func(t *testing.T) {
		mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodDaily).Return(nil, nil)
		mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodWeekly).Return(nil, nil)
		mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodMonthly).
			Return([]domain.HistoryRecord{{ID: "m1", Tipo: domain.PeriodMonthly}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/history?store=Loja+Centro", nil)
		rec := httptest.NewRecorder()

		GetHistory(service)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var container domain.OracleHistory
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&container))
		assert.Len(t, container.Mensal, 1)
		assert.Empty(t, container.Diario)
	})

	t.Run("Sem parâmetro store - 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
		rec := httptest.NewRecorder()

		GetHistory(service)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := history.NewService(mockRepo)

	withParam := func(req *http.Request, id string) *http.Request {
		params := httprouter.Params{{Key: "id", Value: id}}
		return req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, params))
	}

	t.Run("Remoção bem-sucedida - 204", func(t *testing.T) {
		mockRepo.EXPECT().Delete("LOJACENTRO-2025-MONTHLY-05").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/history/LOJACENTRO-2025-MONTHLY-05", nil)
		rec := httptest.NewRecorder()

		DeleteHistory(service)(rec, withParam(req, "LOJACENTRO-2025-MONTHLY-05"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Sem ID na rota - 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/history/", nil)
		rec := httptest.NewRecorder()

		DeleteHistory(service)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetHistoryTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := history.NewService(mockRepo)

	t.Run("Tipo padrão mensal", func(t *testing.T) {
		mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodMonthly).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/history/trend?store=Loja+Centro", nil)
		rec := httptest.NewRecorder()

		GetHistoryTrend(service)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var report history.TrendReport
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
		assert.Equal(t, "Volátil/Estável", report.ScoreTrend)
	})

	t.Run("Tipo explícito na query", func(t *testing.T) {
		mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodWeekly).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/history/trend?store=Loja+Centro&tipo=weekly", nil)
		rec := httptest.NewRecorder()

		GetHistoryTrend(service)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
