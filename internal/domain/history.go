package domain

import (
	"fmt"
	"strings"
	"time"
)

// HistoryRecord é um snapshot persistido de um período processado.
// O ID é uma chave composta determinística (loja + ano + tipo + sub-id),
// de modo que salvar o mesmo período da mesma loja sobrescreve o registro
type HistoryRecord struct {
	ID             string     `json:"id"`
	Tipo           PeriodType `json:"tipo"`
	DataReferencia time.Time  `json:"dataReferencia"`
	Dados          OracleData `json:"dados"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OracleHistory particiona os snapshots de uma loja por granularidade.
// As três listas são independentes; um registro nunca aparece em mais de uma
type OracleHistory struct {
	Diario  []HistoryRecord `json:"diario"`
	Semanal []HistoryRecord `json:"semanal"`
	Mensal  []HistoryRecord `json:"mensal"`
}

// ByTipo retorna a lista da granularidade pedida
func (h OracleHistory) ByTipo(tipo PeriodType) []HistoryRecord {
	switch tipo {
	case PeriodDaily:
		return h.Diario
	case PeriodWeekly:
		return h.Semanal
	case PeriodMonthly:
		return h.Mensal
	}
	return nil
}

// HistoryRecordID monta a chave composta STORENAME-YEAR-TYPE-SUBID.
// O nome da loja é colocado em maiúsculas e sem espaços; o sub-id depende do
// tipo: diário usa mês+dia (MMDD), semanal o número da semana ISO e mensal o
// número do mês, todos com zero à esquerda
func HistoryRecordID(storeName string, period Period) string {
	name := strings.ToUpper(strings.Join(strings.Fields(storeName), ""))

	ref := period.ReferenceDate()
	year := ref.Year()

	var subID string
	switch period.Type {
	case PeriodDaily:
		subID = ref.Format("0102")
	case PeriodWeekly:
		subID = fmt.Sprintf("%02d", ISOWeek(ref))
	case PeriodMonthly:
		subID = fmt.Sprintf("%02d", int(ref.Month()))
	default:
		subID = ref.Format("20060102")
	}

	return fmt.Sprintf("%s-%d-%s-%s", name, year, strings.ToUpper(string(period.Type)), subID)
}
