package domain

import (
	"fmt"
	"time"
)

// PeriodType identifica a granularidade da janela de apuração
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodCustom  PeriodType = "custom"
)

// Period identifica a janela de apuração. Os campos usados dependem do tipo:
// daily usa Date; weekly e custom usam StartDate/EndDate; monthly usa
// Month/Year. O Label é sempre recalculado pelo processador
type Period struct {
	Type                PeriodType `json:"type"`
	Label               string     `json:"label"`
	Date                string     `json:"date,omitempty"`
	StartDate           string     `json:"startDate,omitempty"`
	EndDate             string     `json:"endDate,omitempty"`
	Month               int        `json:"month,omitempty"`
	Year                int        `json:"year,omitempty"`
	BusinessDaysTotal   int        `json:"businessDaysTotal"`
	BusinessDaysElapsed int        `json:"businessDaysElapsed"`
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// ISOWeek retorna o número da semana ISO 8601 da data: semanas começam na
// segunda-feira e a semana 1 é a que contém a primeira quinta-feira do ano
func ISOWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// GenerateLabel monta o rótulo humano do período conforme o tipo.
// Configurações incompletas caem em textos de fallback, nunca em erro
func (p Period) GenerateLabel() string {
	switch p.Type {
	case PeriodDaily:
		d, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return "Data não informada"
		}
		return d.Format("02/01/2006")

	case PeriodMonthly:
		month := p.Month
		if month < 1 || month > 12 {
			month = 1
		}
		year := p.Year
		if year == 0 {
			year = time.Now().Year()
		}
		return fmt.Sprintf("%s/%d", monthNames[month-1], year)

	case PeriodWeekly:
		start, err := time.Parse(time.DateOnly, p.StartDate)
		if err != nil {
			return "Intervalo não informado"
		}
		end, err := time.Parse(time.DateOnly, p.EndDate)
		if err != nil {
			return "Intervalo não informado"
		}
		return fmt.Sprintf(
			"Semana %02d – %s a %s",
			ISOWeek(start),
			start.Format("02/01/2006"),
			end.Format("02/01/2006"),
		)

	case PeriodCustom:
		start, err := time.Parse(time.DateOnly, p.StartDate)
		if err != nil {
			return "Intervalo não informado"
		}
		end, err := time.Parse(time.DateOnly, p.EndDate)
		if err != nil {
			return "Intervalo não informado"
		}
		return fmt.Sprintf("%s a %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	}

	return "Período não definido"
}

// SameWindow compara a identidade do período pelos campos específicos do tipo,
// usada para evitar pontos duplicados no histórico
func (p Period) SameWindow(other Period) bool {
	if p.Type != other.Type {
		return false
	}

	switch p.Type {
	case PeriodDaily:
		return p.Date == other.Date
	case PeriodMonthly:
		return p.Month == other.Month && p.Year == other.Year
	case PeriodWeekly, PeriodCustom:
		return p.StartDate == other.StartDate && p.EndDate == other.EndDate
	}

	return false
}

// ReferenceDate retorna a data de referência do período para ordenação
// cronológica. Períodos sem data válida ficam no início da série
func (p Period) ReferenceDate() time.Time {
	switch p.Type {
	case PeriodDaily:
		if d, err := time.Parse(time.DateOnly, p.Date); err == nil {
			return d
		}
	case PeriodWeekly, PeriodCustom:
		if d, err := time.Parse(time.DateOnly, p.StartDate); err == nil {
			return d
		}
	case PeriodMonthly:
		if p.Year > 0 && p.Month >= 1 && p.Month <= 12 {
			return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}
