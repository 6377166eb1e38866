package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"meesho-recon/internal/aggregate"
	"meesho-recon/internal/classifier"
	"meesho-recon/internal/config"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/resolver"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
)

// StatusSummaryResult is the status table of the filtered orders.
type StatusSummaryResult struct {
	Summary classifier.StatusSummary `json:"summary"`
	Table   *domain.Table            `json:"table"`
	Missing []domain.Field           `json:"missing,omitempty"`
}

// AmountSummaryResult is the financial summary of the filtered orders.
type AmountSummaryResult struct {
	Financials classifier.Financials `json:"financials"`
	Table      *domain.Table         `json:"table"`
	Warnings   []string              `json:"warnings,omitempty"`
}

type AnalyticsService interface {
	AddSKUGroup(sess *session.Context, name string, keywords []string) (domain.SKUGroup, error)
	DeleteSKUGroup(sess *session.Context, name string) error
	ClearSKUGroups(sess *session.Context)
	SetFilter(sess *session.Context, f aggregate.Filter) error
	SetStyleRules(sess *session.Context, text string) ([]aggregate.StyleRule, error)

	FilteredOrders(sess *session.Context) (*domain.Table, error)
	StatusSummary(sess *session.Context) (*StatusSummaryResult, error)
	AmountSummary(sess *session.Context, perUnitCost *decimal.Decimal) (*AmountSummaryResult, error)
	Pivot(sess *session.Context, spec aggregate.FieldPivotSpec) (*domain.Table, error)
	StylePivot(sess *session.Context, set session.FileSet) (*domain.Table, error)
	CourierPivot(sess *session.Context) (*domain.Table, error)
	PaymentPivot(sess *session.Context) (*domain.Table, error)
	ReturnReasonPivot(sess *session.Context) (*domain.Table, error)
}

type analyticsService struct {
	vocab       *config.Vocabulary
	resolver    *resolver.Resolver
	perUnitCost decimal.Decimal
	styleRules  []aggregate.StyleRule
}

func NewAnalyticsService(cfg *config.Config) (AnalyticsService, error) {
	rules, err := aggregate.ParseStyleRules(cfg.Vocabulary.StyleRules)
	if err != nil {
		return nil, fmt.Errorf("invalid default style rules: %w", err)
	}
	return &analyticsService{
		vocab:       cfg.Vocabulary,
		resolver:    resolver.New(cfg.Vocabulary.Fields),
		perUnitCost: cfg.App.PerUnitCost,
		styleRules:  rules,
	}, nil
}

func requireUpload(sess *session.Context, set session.FileSet) (*session.Upload, error) {
	u, ok := sess.Upload(set)
	if !ok {
		return nil, fmt.Errorf("%s files not uploaded: %w", set, domain.ErrNoData)
	}
	return u, nil
}

// AddSKUGroup snapshots the SKUs of the uploaded orders and returns that
// contain any keyword. The group stays inactive until a filter names it.
func (s *analyticsService) AddSKUGroup(sess *session.Context, name string, keywords []string) (domain.SKUGroup, error) {
	known := make([]string, 0)
	for _, set := range []session.FileSet{session.SetOrders, session.SetReturns} {
		u, ok := sess.Upload(set)
		if !ok {
			continue
		}
		if col, ok := u.Resolution.Name(domain.FieldSKU); ok {
			known = append(known, u.Table.DistinctText(col)...)
		}
	}

	group, err := aggregate.NewSKUGroup(name, keywords, known, time.Now())
	if err != nil {
		return domain.SKUGroup{}, err
	}
	sess.AddSKUGroup(group)

	logger.GetLogger().WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"group":      group.Name,
		"keywords":   group.Keywords,
		"skus":       len(group.SKUs),
	}).Info("SKU group created")
	return group, nil
}

func (s *analyticsService) DeleteSKUGroup(sess *session.Context, name string) error {
	if !sess.DeleteSKUGroup(name) {
		return fmt.Errorf("sku group %q: %w", name, domain.ErrSKUGroupNotFound)
	}
	return nil
}

func (s *analyticsService) ClearSKUGroups(sess *session.Context) {
	sess.ClearSKUGroups()
}

func (s *analyticsService) SetFilter(sess *session.Context, f aggregate.Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, unknown := aggregate.ActiveGroups(sess.SKUGroups(), f.ActiveGroups); len(unknown) > 0 {
		return fmt.Errorf("active groups %v: %w", unknown, domain.ErrSKUGroupNotFound)
	}
	sess.SetFilter(f)
	return nil
}

func (s *analyticsService) SetStyleRules(sess *session.Context, text string) ([]aggregate.StyleRule, error) {
	rules, err := aggregate.ParseStyleRulesText(text)
	if err != nil {
		return nil, err
	}
	sess.SetStyleRules(rules)
	return rules, nil
}

func (s *analyticsService) filtered(sess *session.Context) (*session.Upload, []domain.OrderRecord, *domain.Table, error) {
	u, err := requireUpload(sess, session.SetOrders)
	if err != nil {
		return nil, nil, nil, err
	}
	records, view, err := aggregate.Apply(u.Table, u.Records, sess.Filter())
	if err != nil {
		return nil, nil, nil, err
	}
	return u, records, view, nil
}

func (s *analyticsService) FilteredOrders(sess *session.Context) (*domain.Table, error) {
	_, _, view, err := s.filtered(sess)
	return view, err
}

func (s *analyticsService) StatusSummary(sess *session.Context) (*StatusSummaryResult, error) {
	u, records, _, err := s.filtered(sess)
	if err != nil {
		return nil, err
	}
	_, settlementResolved := u.Resolution.Name(domain.FieldSettlement)
	summary := classifier.Summarize(records, settlementResolved)
	return &StatusSummaryResult{
		Summary: summary,
		Table:   summary.Table(),
		Missing: u.Resolution.Missing(domain.FieldStatus, domain.FieldSettlement),
	}, nil
}

func (s *analyticsService) AmountSummary(sess *session.Context, perUnitCost *decimal.Decimal) (*AmountSummaryResult, error) {
	u, records, _, err := s.filtered(sess)
	if err != nil {
		return nil, err
	}
	_, settlementResolved := u.Resolution.Name(domain.FieldSettlement)
	summary := classifier.Summarize(records, settlementResolved)

	in := classifier.FinancialInputs{PerUnitCost: s.perUnitCost}
	if perUnitCost != nil {
		in.PerUnitCost = *perUnitCost
	}
	result := &AmountSummaryResult{Warnings: make([]string, 0)}
	if ads, ok := sess.Upload(session.SetAds); ok {
		total, err := classifier.AdsTotal(ads.Table, s.resolver)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			in.AdsCost = &total
		}
	}

	result.Financials = classifier.ComputeFinancials(records, summary, u.Resolution, in)
	result.Table = result.Financials.Table()
	for _, f := range result.Financials.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("column for %s not found", f))
	}
	if result.Financials.ExchangeLossEstimated {
		result.Warnings = append(result.Warnings, "exchange loss is estimated from the average return loss")
	}
	return result, nil
}

func (s *analyticsService) Pivot(sess *session.Context, spec aggregate.FieldPivotSpec) (*domain.Table, error) {
	u, records, view, err := s.filtered(sess)
	if err != nil {
		return nil, err
	}
	return aggregate.FieldPivot(view, records, u.Resolution, spec)
}

// StylePivot uses the session's style rules, falling back to the configured ones.
func (s *analyticsService) StylePivot(sess *session.Context, set session.FileSet) (*domain.Table, error) {
	rules := sess.StyleRules()
	if len(rules) == 0 {
		rules = s.styleRules
	}
	opts := aggregate.StyleOptions{Rules: rules, Colors: s.vocab.Colors}

	if set == session.SetOrders {
		u, _, view, err := s.filtered(sess)
		if err != nil {
			return nil, err
		}
		return aggregate.StylePivot(view, u.Resolution, opts)
	}
	u, err := requireUpload(sess, set)
	if err != nil {
		return nil, err
	}
	return aggregate.StylePivot(u.Table, u.Resolution, opts)
}

func (s *analyticsService) CourierPivot(sess *session.Context) (*domain.Table, error) {
	u, _, view, err := s.filtered(sess)
	if err != nil {
		return nil, err
	}
	return aggregate.CourierPivot(view, u.Resolution, s.vocab.CourierAliases)
}

func (s *analyticsService) PaymentPivot(sess *session.Context) (*domain.Table, error) {
	u, records, _, err := s.filtered(sess)
	if err != nil {
		return nil, err
	}
	if err := u.Resolution.Require("payment pivot", domain.FieldPaymentDate, domain.FieldSettlement); err != nil {
		return nil, err
	}
	return aggregate.PaymentPivot(records), nil
}

func (s *analyticsService) ReturnReasonPivot(sess *session.Context) (*domain.Table, error) {
	u, err := requireUpload(sess, session.SetReturns)
	if err != nil {
		return nil, err
	}
	return aggregate.ReturnReasonPivot(u.Table, u.Resolution)
}
