package service

import (
	"fmt"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/matcher"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/monitoring"
)

type ReconciliationService interface {
	Reconcile(sess *session.Context) (*domain.ReconciliationReport, error)
	LastReport(sess *session.Context) (*domain.ReconciliationReport, error)
}

type reconciliationService struct {
	engine *matcher.ReconciliationEngine
}

func NewReconciliationService() ReconciliationService {
	return &reconciliationService{
		engine: matcher.NewReconciliationEngine(&matcher.NormalizedMatchStrategy{}),
	}
}

func (s *reconciliationService) snapshot(sess *session.Context, set session.FileSet, optional bool) ([]domain.SnapshotRecord, error) {
	u, ok := sess.Upload(set)
	if !ok {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%s snapshot not uploaded: %w", set, domain.ErrSnapshotIncomplete)
	}
	return matcher.ExtractSnapshot(u.Table, u.Resolution)
}

// Reconcile runs the engine over the session's snapshots. Old and New are
// required; Payout is optional.
func (s *reconciliationService) Reconcile(sess *session.Context) (*domain.ReconciliationReport, error) {
	old, err := s.snapshot(sess, session.SetOld, false)
	if err != nil {
		return nil, err
	}
	newer, err := s.snapshot(sess, session.SetNew, false)
	if err != nil {
		return nil, err
	}
	payout, err := s.snapshot(sess, session.SetPayout, true)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.Reconcile(matcher.ReconciliationInput{Old: old, New: newer, Payout: payout})
	if err != nil {
		logger.LogError("service", "Reconcile", "reconciliation failed", map[string]interface{}{"session_id": sess.ID}, err)
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}
	if _, ok := sess.Upload(session.SetPayout); !ok {
		report.Warnings = append(report.Warnings, "payout snapshot not uploaded, no orders settled")
	}
	sess.SetReport(report)

	counts := make(map[string]int, len(report.StateCounts))
	for _, state := range []domain.LedgerState{domain.PayoutSettled, domain.PresentInBoth, domain.NewOrder, domain.MissingInNew} {
		counts[string(state)] = report.StateCounts[state]
	}
	monitoring.RecordReconciliation(counts)
	return report, nil
}

func (s *reconciliationService) LastReport(sess *session.Context) (*domain.ReconciliationReport, error) {
	report, ok := sess.Report()
	if !ok {
		return nil, fmt.Errorf("no reconciliation run in this session: %w", domain.ErrNoData)
	}
	return report, nil
}
