package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestICM(t *testing.T) {
	tests := []struct {
		name     string
		realized float64
		meta     float64
		expected float64
	}{
		{
			name:     "Meta batida exatamente - ICM 100",
			realized: 50000,
			meta:     50000,
			expected: 100,
		},
		{
			name:     "Meta superada - ICM acima de 100",
			realized: 60000,
			meta:     50000,
			expected: 120,
		},
		{
			name:     "Metade da meta - ICM 50",
			realized: 25000,
			meta:     50000,
			expected: 50,
		},
		{
			name:     "Meta zero - ICM zero, sem divisão por zero",
			realized: 10000,
			meta:     0,
			expected: 0,
		},
		{
			name:     "Meta negativa - tratada como zero",
			realized: 10000,
			meta:     -500,
			expected: 0,
		},
		{
			name:     "Realizado zero - ICM zero",
			realized: 0,
			meta:     50000,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ICM(tt.realized, tt.meta))
		})
	}
}

func TestGap(t *testing.T) {
	assert.Equal(t, 10000.0, Gap(50000, 40000))
	assert.Equal(t, -5000.0, Gap(50000, 55000), "meta superada gera gap negativo")
	assert.Equal(t, 0.0, Gap(50000, 50000))
}

func TestCompositeIndex(t *testing.T) {
	tests := []struct {
		name      string
		mercantil float64
		cdc       float64
		services  float64
		expected  float64
	}{
		{
			name:      "Todos os pilares em 100 - índice 100",
			mercantil: 100,
			cdc:       100,
			services:  100,
			expected:  100,
		},
		{
			name:      "Pesos 0.4/0.3/0.3 aplicados",
			mercantil: 100,
			cdc:       50,
			services:  50,
			expected:  70, // 40 + 15 + 15
		},
		{
			name:      "Resultado arredondado para inteiro",
			mercantil: 81,
			cdc:       77,
			services:  92,
			expected:  83, // 32.4 + 23.1 + 27.6 = 83.1 -> 83
		},
		{
			name:      "Só mercantil pontua",
			mercantil: 110,
			cdc:       0,
			services:  0,
			expected:  44,
		},
		{
			name:      "Tudo zerado",
			mercantil: 0,
			cdc:       0,
			services:  0,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompositeIndex(tt.mercantil, tt.cdc, tt.services))
		})
	}
}

func TestClassifyHealth(t *testing.T) {
	tests := []struct {
		index    float64
		expected string
	}{
		{95, "Alta Performance Sustentável"},
		{90, "Alta Performance Sustentável"},
		{89.9, "Performance Competitiva"},
		{80, "Performance Competitiva"},
		{79.9, "Zona de Atenção"},
		{70, "Zona de Atenção"},
		{69.9, "Pressão Estrutural"},
		{60, "Pressão Estrutural"},
		{59.9, "Risco Crítico"},
		{0, "Risco Crítico"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyHealth(tt.index), "índice %.1f", tt.index)
	}
}

func TestClassifySeller(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{100, "Elite"},
		{90, "Elite"},
		{85, "Alto Contribuidor"},
		{80, "Alto Contribuidor"},
		{75, "Parcial"},
		{70, "Parcial"},
		{65, "Oscilante"},
		{60, "Oscilante"},
		{59, "Risco"},
		{0, "Risco"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifySeller(tt.score), "score %.1f", tt.score)
	}
}

func TestSeriesTrend(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected string
	}{
		{
			name:     "Menos de três pontos - volátil",
			values:   []float64{80, 85},
			expected: "Volátil/Estável",
		},
		{
			name:     "Três pontos crescentes com variação de 5 - alta",
			values:   []float64{80, 83, 85},
			expected: "Tendência de Alta",
		},
		{
			name:     "Crescente mas variação menor que 5 - estável",
			values:   []float64{80, 81, 83},
			expected: "Volátil/Estável",
		},
		{
			name:     "Três pontos decrescentes com variação de 5 - queda",
			values:   []float64{90, 87, 84},
			expected: "Tendência de Queda",
		},
		{
			name:     "Oscilação - volátil",
			values:   []float64{80, 90, 82},
			expected: "Volátil/Estável",
		},
		{
			name:     "Só os três últimos pontos contam",
			values:   []float64{100, 60, 70, 75, 80},
			expected: "Tendência de Alta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeriesTrend(tt.values))
		})
	}
}
