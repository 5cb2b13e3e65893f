// Package allocation spreads manually supplied spend across the leads of
// pooled vendors once all lead files have been combined.
package allocation

import (
	"github.com/rpattn/leadrecon/internal/domain"

	"github.com/shopspring/decimal"
)

// PooledVendors decides which vendors are billed as one pooled total.
type PooledVendors interface {
	IsPooled(vendor string) bool
}

// Allocator overwrites the cost of pooled leads with an even share of a total.
type Allocator struct {
	pooled PooledVendors
}

// NewAllocator creates an allocator for the vendors selected by pooled.
func NewAllocator(pooled PooledVendors) *Allocator {
	return &Allocator{pooled: pooled}
}

// Allocate gives every pooled lead in the combined set total/N, where N is the
// number of pooled leads across all files. The last lead absorbs the rounding
// remainder so the shares add up to total exactly. A total of zero or less
// leaves parsed costs untouched. It returns the number of leads re-costed.
func (a *Allocator) Allocate(leads []domain.Lead, total decimal.Decimal) int {
	if a == nil || a.pooled == nil || !total.IsPositive() {
		return 0
	}

	var targets []int
	for idx := range leads {
		if a.pooled.IsPooled(leads[idx].Vendor) {
			targets = append(targets, idx)
		}
	}
	if len(targets) == 0 {
		return 0
	}

	count := decimal.NewFromInt(int64(len(targets)))
	share := total.Div(count)
	last := total.Sub(share.Mul(count.Sub(decimal.NewFromInt(1))))
	for pos, idx := range targets {
		if pos == len(targets)-1 {
			leads[idx].Cost = last
			continue
		}
		leads[idx].Cost = share
	}
	return len(targets)
}
