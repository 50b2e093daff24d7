package domain

import "time"

// AccountType classifies where an account is held.
type AccountType string

const (
	AccountCash     AccountType = "cash"
	AccountBank     AccountType = "bank"
	AccountExchange AccountType = "exchange"
	AccountBroker   AccountType = "broker"
)

var validAccountTypes = map[AccountType]bool{
	AccountCash:     true,
	AccountBank:     true,
	AccountExchange: true,
	AccountBroker:   true,
}

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// Account is a named place where a user keeps assets. It carries no
// balance of its own; balances are derived from the transaction log.
type Account struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	UserID    string
	Name      string
	Type      AccountType
	Currency  string
}
