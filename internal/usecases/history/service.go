package history

import (
	"errors"

	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/processing"
)

var (
	ErrRecordNotFound = errors.New("snapshot não encontrado")
	ErrInvalidPeriod  = errors.New("período sem data de referência válida")
)

type HistoryService interface {
	Save(result domain.OracleResult) (*domain.HistoryRecord, error)
	GetByStore(storeName string) (*domain.OracleHistory, error)
	GetRecord(id string) (*domain.HistoryRecord, error)
	Delete(id string) error
	Trend(storeName string, tipo domain.PeriodType, current *domain.OracleData) (*TrendReport, error)
	RecentWindow(storeName string, tipo domain.PeriodType) ([]domain.HistoryRecord, error)
}

type Service struct {
	historyRepo repository.HistoryRepository
}

func NewService(historyRepo repository.HistoryRepository) HistoryService {
	return &Service{
		historyRepo: historyRepo,
	}
}

// Save persiste o resultado processado como snapshot do período. A chave
// composta garante que salvar duas vezes o mesmo período sobrescreve em vez
// de duplicar
func (s *Service) Save(result domain.OracleResult) (*domain.HistoryRecord, error) {
	period := result.Store.Period

	reference := period.ReferenceDate()
	if reference.IsZero() {
		return nil, ErrInvalidPeriod
	}

	record := &domain.HistoryRecord{
		ID:             domain.HistoryRecordID(result.Store.Name, period),
		Tipo:           period.Type,
		DataReferencia: reference,
		Dados:          result,
	}

	if err := s.historyRepo.SaveOrUpdate(result.Store.Name, record); err != nil {
		return nil, err
	}

	return record, nil
}

// GetByStore monta o contêiner com as três listas independentes de snapshots
// da loja, uma por granularidade
func (s *Service) GetByStore(storeName string) (*domain.OracleHistory, error) {
	history := &domain.OracleHistory{}

	diario, err := s.historyRepo.ListByStore(storeName, domain.PeriodDaily)
	if err != nil {
		return nil, err
	}
	history.Diario = diario

	semanal, err := s.historyRepo.ListByStore(storeName, domain.PeriodWeekly)
	if err != nil {
		return nil, err
	}
	history.Semanal = semanal

	mensal, err := s.historyRepo.ListByStore(storeName, domain.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	history.Mensal = mensal

	return history, nil
}

func (s *Service) GetRecord(id string) (*domain.HistoryRecord, error) {
	record, err := s.historyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *Service) Delete(id string) error {
	return s.historyRepo.Delete(id)
}

// Trend devolve a série de pontos e as leituras de tendência da loja na
// granularidade pedida, incluindo os dados em edição quando informados
func (s *Service) Trend(storeName string, tipo domain.PeriodType, current *domain.OracleData) (*TrendReport, error) {
	records, err := s.historyRepo.ListByStore(storeName, tipo)
	if err != nil {
		return nil, err
	}

	return Analyze(records, current), nil
}

// RecentWindow retorna a janela de snapshots recentes que o Processador de
// Período usa para o bloco de inteligência
func (s *Service) RecentWindow(storeName string, tipo domain.PeriodType) ([]domain.HistoryRecord, error) {
	return s.historyRepo.ListRecent(storeName, tipo, processing.HistoryWindow)
}
