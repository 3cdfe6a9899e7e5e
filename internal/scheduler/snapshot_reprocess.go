// Package scheduler contém os serviços de agendamento da API
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository"
	"github.com/vfg2006/oraculo-comercial-api/internal/config"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"github.com/vfg2006/oraculo-comercial-api/internal/usecases/processing"
)

type SnapshotReprocessConfig struct {
	CronSchedule string
	Enabled      bool
}

// SnapshotReprocessService reaplica as regras de cálculo sobre todos os
// snapshots salvos. Útil quando as fórmulas de score mudam: os snapshots
// guardam os lançamentos brutos, então o recálculo é sempre possível
type SnapshotReprocessService struct {
	scheduler           *gocron.Scheduler
	historyRepo         repository.HistoryRepository
	processor           processing.Processor
	config              SnapshotReprocessConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSnapshotReprocessService(
	historyRepo repository.HistoryRepository,
	processor processing.Processor,
	cfg *config.Config,
) *SnapshotReprocessService {
	reprocessConfig := SnapshotReprocessConfig{
		CronSchedule: cfg.SnapshotReprocess.CronSchedule, // Default: 5h da manhã todos os dias
		Enabled:      cfg.SnapshotReprocess.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reprocessConfig.CronSchedule,
	}).Info("Configuração do agendador de reprocessamento de snapshots carregada")

	return &SnapshotReprocessService{
		scheduler:   scheduler,
		historyRepo: historyRepo,
		processor:   processor,
		config:      reprocessConfig,
	}
}

func (s *SnapshotReprocessService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de reprocessamento de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de reprocessamento de snapshots")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.ReprocessSnapshots(); err != nil {
			logrus.WithError(err).Error("Erro no reprocessamento de snapshots")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reprocessamento de snapshots: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de reprocessamento de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// ReprocessSnapshots recalcula todos os snapshots salvos agrupados por loja
// e por tipo de período, respeitando a ordem cronológica para que a janela
// de histórico de cada snapshot contenha apenas períodos anteriores
func (s *SnapshotReprocessService) ReprocessSnapshots() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Reprocessamento de snapshots já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando reprocessamento de snapshots")

	records, err := s.historyRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar snapshots para reprocessamento")
		return err
	}

	if len(records) == 0 {
		logrus.Info("Nenhum snapshot encontrado para reprocessamento")
		return nil
	}

	groups := groupByStoreAndType(records)

	var processed, failed int
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].DataReferencia.Before(group[j].DataReferencia)
		})

		for i, record := range group {
			window := historyWindow(group, i)

			result, err := s.processor.Process(record.Dados, window)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"record_id": record.ID,
					"error":     err.Error(),
				}).Error("Erro ao reprocessar snapshot")
				failed++
				continue
			}

			record.Dados = *result
			if err := s.historyRepo.SaveOrUpdate(result.Store.Name, &record); err != nil {
				logrus.WithFields(logrus.Fields{
					"record_id": record.ID,
					"error":     err.Error(),
				}).Error("Erro ao salvar snapshot reprocessado")
				failed++
				continue
			}

			processed++
		}
	}

	logrus.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    failed,
	}).Info("Reprocessamento de snapshots concluído")

	return nil
}

// groupByStoreAndType agrupa os snapshots por loja e tipo de período
func groupByStoreAndType(records []domain.HistoryRecord) map[string][]domain.HistoryRecord {
	groups := make(map[string][]domain.HistoryRecord)
	for _, record := range records {
		key := fmt.Sprintf("%s|%s", record.Dados.Store.Name, record.Tipo)
		groups[key] = append(groups[key], record)
	}
	return groups
}

// historyWindow retorna os snapshots anteriores ao índice dado, limitados ao
// tamanho da janela usada pelo processador
func historyWindow(group []domain.HistoryRecord, index int) []domain.HistoryRecord {
	start := index - processing.HistoryWindow
	if start < 0 {
		start = 0
	}
	return group[start:index]
}

// TriggerManualSync inicia manualmente um reprocessamento de snapshots
func (s *SnapshotReprocessService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reprocessamento de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando reprocessamento manual de snapshots")
	go s.ReprocessSnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotReprocessService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
