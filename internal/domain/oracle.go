// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// SubMetric é um par meta/realizado auxiliar de um pilar (participação do CDC,
// eficiência de Services), com o atingimento derivado em percentual
type SubMetric struct {
	Meta        float64 `json:"meta"`
	Realized    float64 `json:"realized"`
	Achievement float64 `json:"achievement"`
}

// OperationalIndicator é um indicador de contagem (cartões, combos),
// estruturalmente igual a um pilar mas medido em unidades
type OperationalIndicator struct {
	Meta        float64 `json:"meta"`
	Realized    float64 `json:"realized"`
	Achievement float64 `json:"achievement"`
}

// Pillar representa uma dimensão de performance com meta, realizado e os
// campos derivados ICM (realizado/meta x 100) e gap (meta - realizado)
type Pillar struct {
	Meta     float64 `json:"meta"`
	Realized float64 `json:"realized"`
	ICM      float64 `json:"icm"`
	Gap      float64 `json:"gap"`
}

// CDCPillar é o pilar de crediário, com o submétrica de participação
type CDCPillar struct {
	Pillar
	Participation SubMetric `json:"participation"`
}

// ServicesPillar é o pilar de serviços, com a submétrica de eficiência
type ServicesPillar struct {
	Pillar
	Efficiency SubMetric `json:"efficiency"`
}

type OperationalIndicators struct {
	Cards  OperationalIndicator `json:"cards"`
	Combos OperationalIndicator `json:"combos"`
}

type StorePillars struct {
	Mercantil   Pillar                `json:"mercantil"`
	CDC         CDCPillar             `json:"cdc"`
	Services    ServicesPillar        `json:"services"`
	Operational OperationalIndicators `json:"operational"`
}

// TripleCrownStatus indica, por pilar, ICM maior ou igual a 100%
type TripleCrownStatus struct {
	Mercantil bool `json:"mercantil"`
	CDC       bool `json:"cdc"`
	Services  bool `json:"services"`
}

// Store é a unidade sob análise em um período
type Store struct {
	Name              string            `json:"name"`
	Period            Period            `json:"period"`
	Pillars           StorePillars      `json:"pillars"`
	HealthIndex       float64           `json:"healthIndex"`
	Classification    string            `json:"classification"`
	TripleCrownStatus TripleCrownStatus `json:"tripleCrownStatus"`
}

type SellerPillars struct {
	Mercantil Pillar `json:"mercantil"`
	CDC       Pillar `json:"cdc"`
	Services  Pillar `json:"services"`
}

// TrendAnalysis carrega a leitura de tendência por pilar
type TrendAnalysis struct {
	Mercantil string `json:"mercantil"`
	CDC       string `json:"cdc"`
	Services  string `json:"services"`
}

// SellerIntelligence é preenchido apenas quando há contexto histórico
type SellerIntelligence struct {
	Trend              TrendAnalysis `json:"trend"`
	Consistency        float64       `json:"consistency"`
	ConsistencyReading string        `json:"consistencyReading"`
	RiskAlert          string        `json:"riskAlert,omitempty"`
}

// Seller é um vendedor da loja, no mesmo período
type Seller struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Pillars        SellerPillars         `json:"pillars"`
	Operational    OperationalIndicators `json:"operational"`
	Score          float64               `json:"score"`
	Classification string                `json:"classification"`
	IsTripleCrown  bool                  `json:"isTripleCrown"`
	Intelligence   *SellerIntelligence   `json:"intelligence,omitempty"`
}

// Distribution mede a concentração do score nos dois maiores vendedores
type Distribution struct {
	Top1Contribution float64 `json:"top1Contribution"`
	Top2Contribution float64 `json:"top2Contribution"`
	DependencyLevel  string  `json:"dependencyLevel"`
}

// MaturityIndex classifica a maturidade do time pela dispersão de scores
type MaturityIndex struct {
	Above100Percent float64 `json:"above100Percent"`
	Below80Percent  float64 `json:"below80Percent"`
	Classification  string  `json:"classification"`
}

// Projection é a extrapolação linear do fechamento do período
// baseada na razão dias úteis totais / decorridos
type Projection struct {
	MercantilProjected float64 `json:"mercantilProjected"`
	CDCProjected       float64 `json:"cdcProjected"`
	ServicesProjected  float64 `json:"servicesProjected"`
	MercantilGap       float64 `json:"mercantilGap"`
	CDCGap             float64 `json:"cdcGap"`
	ServicesGap        float64 `json:"servicesGap"`
	Probability        string  `json:"probability"`
	IsAvailable        bool    `json:"isAvailable"`
}

// IntelligenceRadar é o resumo do radar da loja: pilares extremos,
// vendedores em destaque/risco, tendência geral e dispersão do time
type IntelligenceRadar struct {
	StrongestPillar  string `json:"strongestPillar"`
	VulnerablePillar string `json:"vulnerablePillar"`
	RisingSeller     string `json:"risingSeller"`
	RiskySeller      string `json:"riskySeller"`
	GeneralTrend     string `json:"generalTrend"`
	DispersionLevel  string `json:"dispersionLevel"`
}

// OracleIntelligence agrega o bloco de inteligência da loja
type OracleIntelligence struct {
	Radar             IntelligenceRadar `json:"radar"`
	StoreTrend        TrendAnalysis     `json:"storeTrend"`
	ConcentrationRisk string            `json:"concentrationRisk"`
	HealthScore       float64           `json:"healthScore"`
	HealthReading     string            `json:"healthReading"`
}

// OracleData é a raiz de agregação de um período: a loja, seus vendedores e
// todos os campos derivados. Antes do processamento os derivados valem zero;
// depois, todos estão preenchidos (o OracleResult tem a mesma forma)
type OracleData struct {
	Store            Store               `json:"store"`
	Sellers          []Seller            `json:"sellers"`
	Distribution     Distribution        `json:"distribution"`
	MaturityIndex    MaturityIndex       `json:"maturityIndex"`
	Projection       Projection          `json:"projection"`
	Intelligence     *OracleIntelligence `json:"intelligence,omitempty"`
	GeneratedAt      string              `json:"generatedAt"`
	MVPID            string              `json:"mvpId,omitempty"`
	MVPJustification string              `json:"mvpJustification,omitempty"`
}

// OracleResult é um OracleData com todos os campos derivados calculados
type OracleResult = OracleData
