package domain

import "time"

// Category labels expense and income transactions. Categories form an
// optional hierarchy through ParentID.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	ParentID  string
}

// Default categories seeded for every new user.
var DefaultExpenseCategories = []string{"Eat", "Buy"}

// Income categories seeded on demand.
var DefaultIncomeCategories = []string{"Salary", "Startup", "Investment"}
