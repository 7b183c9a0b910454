package core

import "sort"

// Summary holds the per-kind totals of a transaction set.
type Summary struct {
	Income   Money
	Fixed    Money
	Variable Money
}

// Summarize folds the transactions into per-kind totals in a single pass.
// Transactions with an unknown kind contribute to no total.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case FixedExpense:
			s.Fixed = s.Fixed.Add(t.Amount)
		case VariableExpense:
			s.Variable = s.Variable.Add(t.Amount)
		}
	}
	return s
}

func (s Summary) TotalExpenses() Money {
	return s.Fixed.Add(s.Variable)
}

// Remaining is budget + income - expenses. It may be negative.
func (s Summary) Remaining(budget Money) Money {
	return budget.Add(s.Income).Sub(s.TotalExpenses())
}

// SortByDateDesc orders transactions most recent first, keeping the
// relative order of equal dates.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})
}
