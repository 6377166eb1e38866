package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/export"
	"meesho-recon/internal/matcher"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/monitoring"
)

// Exportable tables.
const (
	TableOrders         = "orders"
	TableStatusSummary  = "status-summary"
	TableAmountSummary  = "amount-summary"
	TableStylePivot     = "style-pivot"
	TableCourierPivot   = "courier-pivot"
	TablePaymentPivot   = "payment-pivot"
	TableReturnReasons  = "return-reasons"
	TableReconciliation = "reconciliation"
)

var ExportTables = []string{
	TableOrders, TableStatusSummary, TableAmountSummary, TableStylePivot,
	TableCourierPivot, TablePaymentPivot, TableReturnReasons, TableReconciliation,
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	Export(sess *session.Context, table string, format export.Format) (*ExportFile, error)
	Formats() []export.FormatInfo
}

type exportService struct {
	registry       *export.Registry
	analytics      AnalyticsService
	reconciliation ReconciliationService
}

func NewExportService(registry *export.Registry, analytics AnalyticsService, reconciliation ReconciliationService) ExportService {
	return &exportService{
		registry:       registry,
		analytics:      analytics,
		reconciliation: reconciliation,
	}
}

func (s *exportService) Formats() []export.FormatInfo {
	return s.registry.Formats()
}

func (s *exportService) tables(sess *session.Context, name string) ([]domain.NamedTable, error) {
	single := func(title string, t *domain.Table, err error) ([]domain.NamedTable, error) {
		if err != nil {
			return nil, err
		}
		return []domain.NamedTable{{Name: title, Table: t}}, nil
	}

	switch name {
	case TableOrders:
		t, err := s.analytics.FilteredOrders(sess)
		return single("Orders", t, err)
	case TableStatusSummary:
		r, err := s.analytics.StatusSummary(sess)
		if err != nil {
			return nil, err
		}
		return single("Status Summary", r.Table, nil)
	case TableAmountSummary:
		r, err := s.analytics.AmountSummary(sess, nil)
		if err != nil {
			return nil, err
		}
		return single("Amount Summary", r.Table, nil)
	case TableStylePivot:
		t, err := s.analytics.StylePivot(sess, session.SetOrders)
		return single("Style Pivot", t, err)
	case TableCourierPivot:
		t, err := s.analytics.CourierPivot(sess)
		return single("Courier Summary", t, err)
	case TablePaymentPivot:
		t, err := s.analytics.PaymentPivot(sess)
		return single("Upcoming Payments", t, err)
	case TableReturnReasons:
		t, err := s.analytics.ReturnReasonPivot(sess)
		return single("Return Reasons", t, err)
	case TableReconciliation:
		report, err := s.reconciliation.LastReport(sess)
		if err != nil {
			return nil, err
		}
		return matcher.ReportTables(report), nil
	}
	return nil, fmt.Errorf("unknown table %q (known: %s): %w", name, strings.Join(ExportTables, ", "), domain.ErrTableNotFound)
}

func (s *exportService) Export(sess *session.Context, table string, format export.Format) (*ExportFile, error) {
	exporter, err := s.registry.Get(format)
	if err != nil {
		monitoring.RecordExport(string(format), "unavailable")
		return nil, err
	}

	tables, err := s.tables(sess, table)
	if err != nil {
		monitoring.RecordExport(string(format), "error")
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, table, tables); err != nil {
		monitoring.RecordExport(string(format), "error")
		logger.LogError("service", "Export", "render failed", map[string]interface{}{"table": table, "format": format}, err)
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}
	monitoring.RecordExport(string(format), "ok")

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", table, time.Now().Format("20060102_150405"), format),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
