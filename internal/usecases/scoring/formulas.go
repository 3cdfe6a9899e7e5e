// Package scoring contém as fórmulas puras de pontuação do Oráculo Comercial:
// ICM, índice composto, classificações e as penalidades de loja e vendedor
package scoring

import "math"

// Pesos dos pilares no índice composto. Compartilhados entre a saúde da loja
// e o score do vendedor; qualquer divergência entre os dois usos é um bug
const (
	WeightMercantil = 0.4
	WeightCDC       = 0.3
	WeightServices  = 0.3
)

// ICM calcula o Índice de Cumprimento de Meta em percentual.
// Meta zero ou negativa resulta em 0, nunca em divisão por zero
func ICM(realized, meta float64) float64 {
	if meta <= 0 {
		return 0
	}
	return (realized / meta) * 100
}

// Gap retorna meta - realizado. Negativo significa meta superada
func Gap(meta, realized float64) float64 {
	return meta - realized
}

// CompositeIndex combina os três ICMs com os pesos fixos e arredonda.
// É a fórmula central do sistema, usada para a saúde da loja e, sobre as
// notas de pilar, para o score dos vendedores
func CompositeIndex(mercantilICM, cdcICM, servicesICM float64) float64 {
	return math.Round(mercantilICM*WeightMercantil + cdcICM*WeightCDC + servicesICM*WeightServices)
}

// ClassifyHealth classifica o índice de saúde da loja em cinco faixas,
// avaliadas de cima para baixo com limite inferior inclusivo
func ClassifyHealth(index float64) string {
	switch {
	case index >= 90:
		return "Alta Performance Sustentável"
	case index >= 80:
		return "Performance Competitiva"
	case index >= 70:
		return "Zona de Atenção"
	case index >= 60:
		return "Pressão Estrutural"
	default:
		return "Risco Crítico"
	}
}

// ClassifySeller classifica o score do vendedor com o mesmo padrão de faixas
// da loja, mas com rótulos próprios
func ClassifySeller(score float64) string {
	switch {
	case score >= 90:
		return "Elite"
	case score >= 80:
		return "Alto Contribuidor"
	case score >= 70:
		return "Parcial"
	case score >= 60:
		return "Oscilante"
	default:
		return "Risco"
	}
}
