package matching

import (
	"fmt"
	"strings"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"
)

// JoinStrategy selects the key leads are joined to sales on.
type JoinStrategy string

const (
	// JoinAuto uses email when any sales row has one, otherwise the customer key.
	JoinAuto JoinStrategy = "auto"
	// JoinEmail joins on normalized email.
	JoinEmail JoinStrategy = "email"
	// JoinCustomer joins on the "FIRST LAST" customer key.
	JoinCustomer JoinStrategy = "customer"
)

// ParseJoinStrategy reads a strategy name. An empty value means JoinAuto.
func ParseJoinStrategy(raw string) (JoinStrategy, error) {
	switch JoinStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", JoinAuto:
		return JoinAuto, nil
	case JoinEmail:
		return JoinEmail, nil
	case JoinCustomer:
		return JoinCustomer, nil
	default:
		return "", fmt.Errorf("unknown join strategy %q", raw)
	}
}

// IdentityResolver left-joins leads to sales rows.
type IdentityResolver struct {
	strategy JoinStrategy
}

// NewIdentityResolver creates a resolver using strategy.
func NewIdentityResolver(strategy JoinStrategy) *IdentityResolver {
	if strategy == "" {
		strategy = JoinAuto
	}
	return &IdentityResolver{strategy: strategy}
}

// Strategy returns the configured strategy.
func (r *IdentityResolver) Strategy() JoinStrategy {
	return r.strategy
}

// Effective returns the strategy used against sales, resolving JoinAuto.
func (r *IdentityResolver) Effective(sales []domain.Sale) JoinStrategy {
	if r.strategy != JoinAuto {
		return r.strategy
	}
	for _, sale := range sales {
		if sale.Email != "" {
			return JoinEmail
		}
	}
	return JoinCustomer
}

// Join emits one record per matched sales row and one bare record for every
// lead without a match. Sales rows that match no lead are never emitted.
func (r *IdentityResolver) Join(leads []domain.Lead, sales []domain.Sale) ([]domain.Record, JoinStrategy) {
	strategy := r.Effective(sales)
	leadKey, saleKey, matchedBy := joinKeys(strategy)

	index := make(map[string][]int)
	for idx, sale := range sales {
		key := saleKey(sale)
		if key == "" {
			continue
		}
		index[key] = append(index[key], idx)
	}

	records := make([]domain.Record, 0, len(leads))
	for _, lead := range leads {
		record := domain.NewRecord(lead)
		key := leadKey(lead)
		matches := index[key]
		if key == "" || len(matches) == 0 {
			records = append(records, record)
			continue
		}
		for _, idx := range matches {
			records = append(records, record.WithSale(sales[idx], matchedBy))
		}
	}
	return records, strategy
}

func joinKeys(strategy JoinStrategy) (func(domain.Lead) string, func(domain.Sale) string, domain.SalesMatch) {
	if strategy == JoinCustomer {
		return func(l domain.Lead) string { return normalize.CustomerKey(l.FirstName, l.LastName) },
			func(s domain.Sale) string { return s.Customer },
			domain.SalesMatchCustomer
	}
	return func(l domain.Lead) string { return l.Email },
		func(s domain.Sale) string { return s.Email },
		domain.SalesMatchEmail
}
