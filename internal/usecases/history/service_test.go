package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("Período válido - snapshot persistido com chave composta", func(t *testing.T) {
		result := monthlyData(4, 90)

		mockRepo.EXPECT().
			SaveOrUpdate("Loja Centro", gomock.Any()).
			DoAndReturn(func(storeName string, record *domain.HistoryRecord) error {
				assert.Equal(t, "LOJACENTRO-2025-MONTHLY-04", record.ID)
				assert.Equal(t, domain.PeriodMonthly, record.Tipo)
				assert.Equal(t, 2025, record.DataReferencia.Year())
				return nil
			})

		record, err := service.Save(result)

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, "LOJACENTRO-2025-MONTHLY-04", record.ID)
	})

	t.Run("Período sem data de referência - erro de validação", func(t *testing.T) {
		result := monthlyData(4, 90)
		result.Store.Period = domain.Period{Type: domain.PeriodDaily, Date: "data-inválida"}

		record, err := service.Save(result)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
		assert.Nil(t, record)
	})

	t.Run("Falha do repositório é propagada", func(t *testing.T) {
		repoErr := errors.New("conexão perdida")
		mockRepo.EXPECT().
			SaveOrUpdate(gomock.Any(), gomock.Any()).
			Return(repoErr)

		record, err := service.Save(monthlyData(5, 90))

		assert.ErrorIs(t, err, repoErr)
		assert.Nil(t, record)
	})
}

func TestService_GetByStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := NewService(mockRepo)

	daily := []domain.HistoryRecord{{ID: "d1", Tipo: domain.PeriodDaily}}
	weekly := []domain.HistoryRecord{{ID: "w1", Tipo: domain.PeriodWeekly}}
	monthly := []domain.HistoryRecord{
		{ID: "m1", Tipo: domain.PeriodMonthly},
		{ID: "m2", Tipo: domain.PeriodMonthly},
	}

	mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodDaily).Return(daily, nil)
	mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodWeekly).Return(weekly, nil)
	mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodMonthly).Return(monthly, nil)

	history, err := service.GetByStore("Loja Centro")

	assert.NoError(t, err)
	assert.Len(t, history.Diario, 1)
	assert.Len(t, history.Semanal, 1)
	assert.Len(t, history.Mensal, 2)
	assert.Equal(t, monthly, history.ByTipo(domain.PeriodMonthly))
}

func TestService_GetRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("Registro existente", func(t *testing.T) {
		expected := &domain.HistoryRecord{ID: "LOJACENTRO-2025-MONTHLY-04"}
		mockRepo.EXPECT().GetByID("LOJACENTRO-2025-MONTHLY-04").Return(expected, nil)

		record, err := service.GetRecord("LOJACENTRO-2025-MONTHLY-04")

		assert.NoError(t, err)
		assert.Equal(t, expected, record)
	})

	t.Run("Registro ausente - ErrRecordNotFound", func(t *testing.T) {
		mockRepo.EXPECT().GetByID("inexistente").Return(nil, nil)

		record, err := service.GetRecord("inexistente")

		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Nil(t, record)
	})
}

func TestService_Trend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := NewService(mockRepo)

	records := []domain.HistoryRecord{
		monthlySnapshot(3, 70),
		monthlySnapshot(4, 80),
		monthlySnapshot(5, 90),
	}

	mockRepo.EXPECT().ListByStore("Loja Centro", domain.PeriodMonthly).Return(records, nil)

	report, err := service.Trend("Loja Centro", domain.PeriodMonthly, nil)

	assert.NoError(t, err)
	assert.Len(t, report.Points, 3)
	assert.Equal(t, "Tendência de Alta", report.ScoreTrend)
}

func TestService_RecentWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := NewService(mockRepo)

	records := []domain.HistoryRecord{monthlySnapshot(5, 90)}
	mockRepo.EXPECT().
		ListRecent("Loja Centro", domain.PeriodMonthly, uint64(3)).
		Return(records, nil)

	window, err := service.RecentWindow("Loja Centro", domain.PeriodMonthly)

	assert.NoError(t, err)
	assert.Equal(t, records, window)
}
