package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeProcessor registra as chamadas de Process na ordem recebida
type fakeProcessor struct {
	calls []processCall
	fail  map[string]bool
}

type processCall struct {
	recordID   string
	windowSize int
}

func (f *fakeProcessor) Process(data domain.OracleData, history []domain.HistoryRecord) (*domain.OracleResult, error) {
	id := domain.HistoryRecordID(data.Store.Name, data.Store.Period)
	f.calls = append(f.calls, processCall{recordID: id, windowSize: len(history)})

	if f.fail[id] {
		return nil, errors.New("falha de cálculo")
	}

	out := data
	out.GeneratedAt = "reprocessado"
	return &out, nil
}

func monthlyRecord(store string, month int) domain.HistoryRecord {
	period := domain.Period{Type: domain.PeriodMonthly, Month: month, Year: 2025}
	return domain.HistoryRecord{
		ID:             domain.HistoryRecordID(store, period),
		Tipo:           domain.PeriodMonthly,
		DataReferencia: time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Dados: domain.OracleData{
			Store: domain.Store{Name: store, Period: period},
		},
	}
}

func TestSnapshotReprocessService_ReprocessSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	processor := &fakeProcessor{}

	service := &SnapshotReprocessService{
		historyRepo: mockRepo,
		processor:   processor,
	}

	// Cinco meses da mesma loja, devolvidos fora de ordem
	records := []domain.HistoryRecord{
		monthlyRecord("Loja Centro", 5),
		monthlyRecord("Loja Centro", 1),
		monthlyRecord("Loja Centro", 3),
		monthlyRecord("Loja Centro", 2),
		monthlyRecord("Loja Centro", 4),
	}

	mockRepo.EXPECT().ListAll().Return(records, nil)
	mockRepo.EXPECT().
		SaveOrUpdate("Loja Centro", gomock.Any()).
		DoAndReturn(func(storeName string, record *domain.HistoryRecord) error {
			assert.Equal(t, "reprocessado", record.Dados.GeneratedAt)
			return nil
		}).
		Times(5)

	err := service.ReprocessSnapshots()

	assert.NoError(t, err)
	assert.Len(t, processor.calls, 5)

	// Ordem cronológica e janela só com períodos anteriores, limitada a 3
	expectedWindows := []int{0, 1, 2, 3, 3}
	for i, call := range processor.calls {
		assert.Equal(t, monthlyRecord("Loja Centro", i+1).ID, call.recordID)
		assert.Equal(t, expectedWindows[i], call.windowSize)
	}
}

func TestSnapshotReprocessService_GroupsByStoreAndType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	processor := &fakeProcessor{}

	service := &SnapshotReprocessService{
		historyRepo: mockRepo,
		processor:   processor,
	}

	weekly := monthlyRecord("Loja Centro", 2)
	weekly.Tipo = domain.PeriodWeekly

	records := []domain.HistoryRecord{
		monthlyRecord("Loja Centro", 1),
		monthlyRecord("Loja Norte", 1),
		weekly,
	}

	mockRepo.EXPECT().ListAll().Return(records, nil)
	mockRepo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	err := service.ReprocessSnapshots()

	assert.NoError(t, err)
	assert.Len(t, processor.calls, 3)

	// Grupos independentes: nenhum snapshot serve de janela para outro grupo
	for _, call := range processor.calls {
		assert.Equal(t, 0, call.windowSize)
	}
}

func TestSnapshotReprocessService_CountsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)

	failing := monthlyRecord("Loja Centro", 1)
	processor := &fakeProcessor{fail: map[string]bool{failing.ID: true}}

	service := &SnapshotReprocessService{
		historyRepo: mockRepo,
		processor:   processor,
	}

	records := []domain.HistoryRecord{
		failing,
		monthlyRecord("Loja Centro", 2),
	}

	mockRepo.EXPECT().ListAll().Return(records, nil)
	// Só o snapshot processado com sucesso é salvo
	mockRepo.EXPECT().SaveOrUpdate("Loja Centro", gomock.Any()).Return(nil).Times(1)

	err := service.ReprocessSnapshots()

	assert.NoError(t, err)
	assert.Len(t, processor.calls, 2)
}

func TestSnapshotReprocessService_EmptyHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := &SnapshotReprocessService{
		historyRepo: mockRepo,
		processor:   &fakeProcessor{},
	}

	mockRepo.EXPECT().ListAll().Return(nil, nil)

	assert.NoError(t, service.ReprocessSnapshots())
}

func TestSnapshotReprocessService_ListAllError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockHistoryRepository(ctrl)
	service := &SnapshotReprocessService{
		historyRepo: mockRepo,
		processor:   &fakeProcessor{},
	}

	repoErr := errors.New("banco indisponível")
	mockRepo.EXPECT().ListAll().Return(nil, repoErr)

	assert.ErrorIs(t, service.ReprocessSnapshots(), repoErr)
}

func TestSnapshotReprocessService_GetStatus(t *testing.T) {
	service := &SnapshotReprocessService{
		config: SnapshotReprocessConfig{
			CronSchedule: "0 5 * * *",
			Enabled:      true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 5 * * *", status["sync_cron"])
}
