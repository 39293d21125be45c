// internal/domain/goal.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal tracks progress toward a savings target. CurrentAmount is moved by
// hand through quick add; it is not tied to any wallet.
type Goal struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount" json:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount" json:"current_amount"`
	Deadline      *time.Time      `db:"deadline" json:"deadline"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Progress returns completion as a percentage, capped at 100.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}

// Reached reports whether the target has been met.
func (g Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}
