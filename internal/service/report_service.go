package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"expensevis/internal/backend"
	"expensevis/internal/cache"
	"expensevis/internal/core"
	"expensevis/internal/report"
)

const (
	chartCacheSize     = 128
	chartCacheTTL      = 5 * time.Minute
	cacheSweepInterval = time.Minute
)

// Summary is the aggregate view behind the reports endpoint.
type Summary struct {
	Categories   []report.CategorySummary    `json:"categories"`
	TaxByCat     []report.CategorySummary    `json:"taxByCategory"`
	PaymentTypes []report.PaymentTypeSummary `json:"paymentTypes"`
	Budget       *core.BudgetReport          `json:"budget,omitempty"`
}

// ReportService builds aggregation and chart payloads over stored records.
// Chart bundles are cached per account and reporting currency; every write
// path invalidates the account's entries.
type ReportService struct {
	store  backend.Backend
	rates  core.RateTable
	charts *cache.LRUCache[report.Bundle]
	caches *cache.Manager
}

func NewReportService(store backend.Backend, rates core.RateTable) *ReportService {
	if rates == nil {
		rates = core.DefaultRates()
	}
	s := &ReportService{
		store:  store,
		rates:  rates,
		charts: cache.NewLRUCache[report.Bundle](chartCacheSize, chartCacheTTL),
		caches: cache.NewManager(),
	}
	s.caches.Register(s.charts)
	s.caches.StartCleanup(cacheSweepInterval)
	return s
}

// Close stops the background cache sweeper.
func (s *ReportService) Close() {
	s.caches.Stop()
}

// Charts returns the full chart bundle with amounts converted into the
// reporting currency. Records tagged with a currency missing from the rate
// table pass through unconverted under the default policy.
func (s *ReportService) Charts(ctx context.Context, account string, target core.Currency, policy report.ConversionPolicy) (report.Bundle, error) {
	key := chartCacheKey(account, target, policy)
	if bundle, ok := s.charts.Get(key); ok {
		return bundle, nil
	}

	records, err := s.store.ListRecords(ctx, account)
	if err != nil {
		return report.Bundle{}, fmt.Errorf("list records: %w", err)
	}

	if target != "" {
		records, err = report.ConvertToReportingCurrency(records, s.ratesFor(target), policy)
		if err != nil {
			return report.Bundle{}, err
		}
	}

	bundle := report.BuildBundle(records)
	s.charts.Set(key, bundle)
	return bundle, nil
}

// Summarize aggregates totals by category and payment type and, when a
// budget is configured, evaluates spending against it. Records and budget
// load concurrently.
func (s *ReportService) Summarize(ctx context.Context, account string) (Summary, error) {
	var (
		records   []core.ExpenseRecord
		budget    core.BudgetConfig
		hasBudget bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.store.ListRecords(gctx, account)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cfg, err := s.store.GetBudget(gctx, account)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("get budget: %w", err)
		}
		budget = cfg
		hasBudget = true
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Categories:   report.SumByCategory(records),
		TaxByCat:     report.SumTaxByCategory(records),
		PaymentTypes: report.SummaryByPaymentType(records),
	}
	if hasBudget {
		br := core.EvaluateBudget(records, budget)
		summary.Budget = &br
	}
	return summary, nil
}

// EvaluateBudget computes the budget report alone, core.ErrBudgetNotSet
// when no budget is configured.
func (s *ReportService) EvaluateBudget(ctx context.Context, account string) (core.BudgetReport, error) {
	budget, err := s.store.GetBudget(ctx, account)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.BudgetReport{}, core.ErrBudgetNotSet
		}
		return core.BudgetReport{}, fmt.Errorf("get budget: %w", err)
	}

	records, err := s.store.ListRecords(ctx, account)
	if err != nil {
		return core.BudgetReport{}, fmt.Errorf("list records: %w", err)
	}
	return core.EvaluateBudget(records, budget), nil
}

// InvalidateAccount drops every cached chart bundle for the account.
func (s *ReportService) InvalidateAccount(account string) {
	s.charts.DeletePrefix(account + "|")
}

// ratesFor rebases the rate table so the target currency becomes 1.0.
func (s *ReportService) ratesFor(target core.Currency) core.RateTable {
	base, ok := s.rates[target]
	if !ok || base.IsZero() {
		return s.rates
	}
	out := make(core.RateTable, len(s.rates))
	for cur, rate := range s.rates {
		out[cur] = rate.Div(base)
	}
	return out
}

func chartCacheKey(account string, target core.Currency, policy report.ConversionPolicy) string {
	return fmt.Sprintf("%s|%s|%d", account, target, policy)
}
