package models

// AccountLine is one account on a statement after duplicate entries were summed.
type AccountLine struct {
	Key   string `json:"-" yaml:"-"` // normalized name, stable across years
	Name  string `json:"name" yaml:"name"`
	Kind  Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value Money  `json:"value" yaml:"value"`
}

// AccountGroup is a list of accounts with its subtotal.
type AccountGroup struct {
	Accounts []AccountLine `json:"accounts" yaml:"accounts"`
	Total    Money         `json:"total" yaml:"total"`
}

// NewAccountGroup totals the given lines.
func NewAccountGroup(lines []AccountLine) AccountGroup {
	if lines == nil {
		lines = []AccountLine{}
	}
	total := Zero
	for _, l := range lines {
		total = total.Add(l.Value)
	}
	return AccountGroup{Accounts: lines, Total: total}
}

// KindTotal sums the accounts of one kind.
func (g AccountGroup) KindTotal(k Kind) Money {
	total := Zero
	for _, l := range g.Accounts {
		if l.Kind == k {
			total = total.Add(l.Value)
		}
	}
	return total
}

// Section is the current / non-current split of assets or liabilities.
type Section struct {
	Current    AccountGroup `json:"current" yaml:"current"`
	NonCurrent AccountGroup `json:"non_current" yaml:"non_current"`
	Total      Money        `json:"total" yaml:"total"`
}

// EquitySection holds contributed equity plus the year's retained earnings.
type EquitySection struct {
	Accounts         []AccountLine `json:"accounts" yaml:"accounts"`
	Contributed      Money         `json:"contributed" yaml:"contributed"`
	RetainedEarnings Money         `json:"retained_earnings" yaml:"retained_earnings"`
	Total            Money         `json:"total" yaml:"total"`
}

// BalanceSheet represents a single year balance sheet.
type BalanceSheet struct {
	Assets          Section       `json:"assets" yaml:"assets"`
	Liabilities     Section       `json:"liabilities" yaml:"liabilities"`
	Equity          EquitySection `json:"equity" yaml:"equity"`
	TotalLiabEquity Money         `json:"total_liab_equity" yaml:"total_liab_equity"`
	Balanced        bool          `json:"balanced" yaml:"balanced"`
	Imbalance       Money         `json:"imbalance" yaml:"imbalance"` // assets.total − total_liab_equity
}

// Cash is the total of current cash accounts.
func (b BalanceSheet) Cash() Money { return b.Assets.Current.KindTotal(KindCash) }

// Receivables is the total of current receivable accounts.
func (b BalanceSheet) Receivables() Money { return b.Assets.Current.KindTotal(KindReceivables) }

// Inventory is the total of current inventory accounts.
func (b BalanceSheet) Inventory() Money { return b.Assets.Current.KindTotal(KindInventory) }

// Payables is the total of current supplier accounts.
func (b BalanceSheet) Payables() Money { return b.Liabilities.Current.KindTotal(KindPayables) }

// ShortTermDebt is the current financial debt.
func (b BalanceSheet) ShortTermDebt() Money { return b.Liabilities.Current.KindTotal(KindDebt) }

// IncomeStatement represents a single year income statement.
type IncomeStatement struct {
	Revenues          []AccountLine `json:"revenues" yaml:"revenues"`
	Expenses          []AccountLine `json:"expenses" yaml:"expenses"`
	NetSales          Money         `json:"net_sales" yaml:"net_sales"`
	COGS              Money         `json:"cogs" yaml:"cogs"`
	GrossProfit       Money         `json:"gross_profit" yaml:"gross_profit"`
	OperatingExpenses Money         `json:"operating_expenses" yaml:"operating_expenses"`
	Depreciation      Money         `json:"depreciation" yaml:"depreciation"`
	OperatingIncome   Money         `json:"operating_income" yaml:"operating_income"`
	InterestExpense   Money         `json:"interest_expense" yaml:"interest_expense"`
	Taxes             Money         `json:"taxes" yaml:"taxes"`
	NetIncome         Money         `json:"net_income" yaml:"net_income"`
}

// FinancialStatements pairs the two statements of one year.
type FinancialStatements struct {
	BalanceSheet    BalanceSheet    `json:"balance_sheet" yaml:"balance_sheet"`
	IncomeStatement IncomeStatement `json:"income_statement" yaml:"income_statement"`
}
