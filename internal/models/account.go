// Package models defines data structures for Worth
package models

import (
	"strings"
	"time"
)

// AccountType is the closed set of account classification tags.
type AccountType string

const (
	AccountTypeCurrent    AccountType = "current"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeISA        AccountType = "isa"
	AccountTypeInvestment AccountType = "investment"
	AccountTypePension    AccountType = "pension"
	AccountTypeCash       AccountType = "cash"
	AccountTypeLoan       AccountType = "loan"
)

// AccountTypes returns all known account types in display order.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeCurrent,
		AccountTypeSavings,
		AccountTypeCreditCard,
		AccountTypeISA,
		AccountTypeInvestment,
		AccountTypePension,
		AccountTypeCash,
		AccountTypeLoan,
	}
}

// ParseAccountType validates a type tag against the closed set.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", NewValidationError("account_type", s, "unknown account type")
}

// Sign returns the normal balance sign convention for the type:
// -1 for debt accounts (credit cards, loans), +1 otherwise.
func (t AccountType) Sign() int {
	switch t {
	case AccountTypeCreditCard, AccountTypeLoan:
		return -1
	default:
		return 1
	}
}

// Institution identifies the bank or provider holding an account.
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Account represents a tracked financial account. Balances are recorded
// as point-in-time snapshots, not transactions.
type Account struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Institution       Institution `json:"institution"`
	Type              AccountType `json:"account_type"`
	CurrencyCode      string      `json:"currency_code"`
	NormalBalanceSign int         `json:"normal_balance_sign"` // {-1, 1}
	OpenedDate        string      `json:"opened_date,omitempty"` // YYYY-MM-DD
	ClosedDate        string      `json:"closed_date,omitempty"` // YYYY-MM-DD
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Validate checks account invariants before persistence.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return NewValidationError("id", a.ID, "account id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return NewValidationError("name", a.Name, "account name is required")
	}
	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return err
	}
	if a.NormalBalanceSign != 1 && a.NormalBalanceSign != -1 {
		return NewValidationError("normal_balance_sign", a.NormalBalanceSign, "must be -1 or 1")
	}
	for field, date := range map[string]string{"opened_date": a.OpenedDate, "closed_date": a.ClosedDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return NewValidationError(field, date, "must be YYYY-MM-DD")
		}
	}
	return nil
}

// AccountView is the caller-facing account shape: the account record plus
// snapshot-derived fields and the multi-window activity map.
type AccountView struct {
	Account
	FirstSnapshotDate  string                          `json:"first_snapshot_date"`
	LatestSnapshotDate string                          `json:"latest_snapshot_date"`
	LatestBalanceMinor int64                           `json:"latest_balance_minor"`
	ActivityByPeriod   map[ActivityPeriod]ActivityData `json:"activity_by_period"`
}
