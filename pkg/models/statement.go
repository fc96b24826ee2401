package models

import (
	"time"
)

type StatementRequest struct {
	Symbol    string
	StartDate time.Time
}

type StatementValue struct {
	DataCode string `json:"dataCode"`
	Value    Float  `json:"value"`
}

type StatementData struct {
	BalanceSheet    []StatementValue `json:"balanceSheet"`
	IncomeStatement []StatementValue `json:"incomeStatement"`
	CashFlow        []StatementValue `json:"cashFlow"`
	Overview        []StatementValue `json:"overview"`
}

// Statement is one quarterly financial statement for a company.
type Statement struct {
	Date          Timestamp     `json:"date"`
	Quarter       int           `json:"quarter"`
	Year          int           `json:"year"`
	StatementData StatementData `json:"statementData"`
}

// Lookup finds a data code across all sections of the statement.
func (s Statement) Lookup(code string) (float64, bool) {
	for _, section := range [][]StatementValue{
		s.StatementData.Overview,
		s.StatementData.IncomeStatement,
		s.StatementData.BalanceSheet,
		s.StatementData.CashFlow,
	} {
		for _, v := range section {
			if v.DataCode == code {
				return float64(v.Value), true
			}
		}
	}
	return 0, false
}
