package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
)

func monthlySnapshot(month int, pct float64) domain.HistoryRecord {
	data := monthlyData(month, pct)
	return domain.HistoryRecord{
		ID:             domain.HistoryRecordID(data.Store.Name, data.Store.Period),
		Tipo:           domain.PeriodMonthly,
		DataReferencia: data.Store.Period.ReferenceDate(),
		Dados:          data,
	}
}

func monthlyData(month int, pct float64) domain.OracleData {
	return domain.OracleData{
		Store: domain.Store{
			Name: "Loja Centro",
			Period: domain.Period{
				Type:  domain.PeriodMonthly,
				Month: month,
				Year:  2025,
			},
			Pillars: domain.StorePillars{
				Mercantil: domain.Pillar{Meta: 100000, Realized: 100000 * pct / 100},
				CDC:       domain.CDCPillar{Pillar: domain.Pillar{Meta: 50000, Realized: 50000 * pct / 100}},
				Services:  domain.ServicesPillar{Pillar: domain.Pillar{Meta: 30000, Realized: 30000 * pct / 100}},
			},
		},
	}
}

func TestBuildPoints_ChronologicalOrder(t *testing.T) {
	records := []domain.HistoryRecord{
		monthlySnapshot(5, 90),
		monthlySnapshot(3, 70),
		monthlySnapshot(4, 80),
	}

	points := BuildPoints(records, nil)

	assert.Len(t, points, 3)
	assert.Equal(t, "Março/2025", points[0].Label)
	assert.Equal(t, "Abril/2025", points[1].Label)
	assert.Equal(t, "Maio/2025", points[2].Label)
	assert.Equal(t, records[1].ID, points[0].PeriodID)
}

func TestBuildPoints_AppendsCurrentPeriod(t *testing.T) {
	records := []domain.HistoryRecord{
		monthlySnapshot(3, 70),
		monthlySnapshot(4, 80),
	}

	current := monthlyData(5, 90)
	points := BuildPoints(records, &current)

	assert.Len(t, points, 3)
	assert.Equal(t, CurrentPointID, points[2].PeriodID)
	assert.Equal(t, "Maio/2025", points[2].Label)
}

func TestBuildPoints_SkipsCurrentWhenAlreadySaved(t *testing.T) {
	records := []domain.HistoryRecord{
		monthlySnapshot(3, 70),
		monthlySnapshot(4, 80),
	}

	// Mesmo mês do último snapshot: ponto "current" seria redundante
	current := monthlyData(4, 85)
	points := BuildPoints(records, &current)

	assert.Len(t, points, 2)
	for _, p := range points {
		assert.NotEqual(t, CurrentPointID, p.PeriodID)
	}
}

func TestBuildPoints_PointFields(t *testing.T) {
	data := monthlyData(4, 80)
	data.Sellers = []domain.Seller{
		{
			Name: "Ana",
			Pillars: domain.SellerPillars{
				Mercantil: domain.Pillar{Meta: 50000, Realized: 48000},
			},
		},
		{
			Name: "Bruno",
			Pillars: domain.SellerPillars{
				Mercantil: domain.Pillar{Meta: 50000, Realized: 32000},
			},
		},
	}

	points := BuildPoints([]domain.HistoryRecord{
		{
			ID:             "LOJACENTRO-2025-MONTHLY-04",
			Tipo:           domain.PeriodMonthly,
			DataReferencia: data.Store.Period.ReferenceDate(),
			Dados:          data,
		},
	}, nil)

	assert.Len(t, points, 1)
	point := points[0]

	assert.Equal(t, 80000.0, point.MercantilReal)
	assert.Equal(t, 100000.0, point.MercantilMeta)
	assert.Equal(t, 80.0, point.MercantilICM)
	assert.Equal(t, 40000.0, point.CDCReal)
	assert.Equal(t, 24000.0, point.ServicesReal)

	// Dependência: os dois vendedores respondem por 100% do mercantil
	assert.Equal(t, 100.0, point.Dependency)
	assert.Greater(t, point.Score, 0.0)
}

func TestAnalyze_Trends(t *testing.T) {
	tests := []struct {
		name          string
		percents      []float64
		expectedScore string
	}{
		{
			name:          "Três ciclos em alta - tendência de alta",
			percents:      []float64{70, 80, 90},
			expectedScore: "Tendência de Alta",
		},
		{
			name:          "Três ciclos em queda - tendência de queda",
			percents:      []float64{90, 80, 70},
			expectedScore: "Tendência de Queda",
		},
		{
			name:          "Dois ciclos apenas - volátil/estável",
			percents:      []float64{80, 90},
			expectedScore: "Volátil/Estável",
		},
		{
			name:          "Oscilação - volátil/estável",
			percents:      []float64{80, 95, 85},
			expectedScore: "Volátil/Estável",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]domain.HistoryRecord, 0, len(tt.percents))
			for i, pct := range tt.percents {
				records = append(records, monthlySnapshot(i+1, pct))
			}

			report := Analyze(records, nil)

			assert.Len(t, report.Points, len(tt.percents))
			assert.Equal(t, tt.expectedScore, report.ScoreTrend)
			assert.Equal(t, tt.expectedScore, report.MercantilTrend)
			assert.Equal(t, tt.expectedScore, report.CDCTrend)
			assert.Equal(t, tt.expectedScore, report.ServicesTrend)
		})
	}
}

func TestHistoryRecordID(t *testing.T) {
	tests := []struct {
		name     string
		store    string
		period   domain.Period
		expected string
	}{
		{
			name:     "Mensal usa o número do mês como sub-id",
			store:    "Loja Centro",
			period:   domain.Period{Type: domain.PeriodMonthly, Month: 4, Year: 2025},
			expected: "LOJACENTRO-2025-MONTHLY-04",
		},
		{
			name:     "Semanal usa a semana ISO",
			store:    "Loja Centro",
			period:   domain.Period{Type: domain.PeriodWeekly, StartDate: "2025-01-06", EndDate: "2025-01-11"},
			expected: "LOJACENTRO-2025-WEEKLY-02",
		},
		{
			name:     "Diário usa mês e dia",
			store:    "Loja Centro",
			period:   domain.Period{Type: domain.PeriodDaily, Date: "2025-04-15"},
			expected: "LOJACENTRO-2025-DAILY-0415",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.HistoryRecordID(tt.store, tt.period))
		})
	}
}
