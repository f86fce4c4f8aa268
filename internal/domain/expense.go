package domain

// ExpenseTypeOutflow is the type stamped on every user-created expense.
// The column exists for a future inflow/outflow split; today only outflows
// ("saida") are written.
const ExpenseTypeOutflow = "saida"

// Expense is one logged business expense. Expenses are created and deleted
// against the expenses table; there is no update path.
type Expense struct {
	ID          int64  `json:"id"`
	CreatedAt   string `json:"created_at,omitempty"`
	Description string `json:"description"`
	Amount      Flex64 `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// ExpenseDraft carries the fields accepted when logging an expense.
type ExpenseDraft struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}
