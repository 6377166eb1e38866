package service

import (
	"errors"
	"fmt"
	"time"

	"meesho-recon/internal/classifier"
	"meesho-recon/internal/config"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/matcher"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/monitoring"
)

type UploadService interface {
	// Upload ingests files into a file set of the session. A nil headerOffset
	// uses the preset of the set.
	Upload(sess *session.Context, set session.FileSet, files []parser.FileBlob, headerOffset *int) (*session.UploadInfo, error)
}

// IngestFailedError is returned when no file of an upload could be read.
type IngestFailedError struct {
	Set   session.FileSet
	Files []*domain.FileError
	Err   error
}

func (e *IngestFailedError) Error() string {
	return fmt.Sprintf("%s upload failed: %v", e.Set, e.Err)
}

func (e *IngestFailedError) Unwrap() error {
	return e.Err
}

// TooLarge reports whether every file was rejected by the size ceiling.
func (e *IngestFailedError) TooLarge() bool {
	for _, f := range e.Files {
		if f.Kind != domain.KindFileTooLarge {
			return false
		}
	}
	return len(e.Files) > 0
}

type uploadService struct {
	ingester   *parser.Ingester
	resolver   *resolver.Resolver
	classifier *classifier.Classifier
	vocab      *config.Vocabulary
}

func NewUploadService(cfg *config.Config) UploadService {
	return &uploadService{
		ingester:   parser.NewIngester(cfg.Ingest.MaxUploadBytes()),
		resolver:   resolver.New(cfg.Vocabulary.Fields),
		classifier: classifier.New(cfg.Vocabulary.Statuses),
		vocab:      cfg.Vocabulary,
	}
}

// fieldsFor lists the semantic fields resolved for each file set.
func fieldsFor(set session.FileSet) []domain.Field {
	switch set {
	case session.SetAds:
		return []domain.Field{domain.FieldAdsCost}
	case session.SetOld, session.SetNew, session.SetPayout:
		return []domain.Field{domain.FieldOrderID, domain.FieldStatus, domain.FieldAmount}
	default:
		return classifier.OrderFields
	}
}

func (s *uploadService) Upload(sess *session.Context, set session.FileSet, files []parser.FileBlob, headerOffset *int) (*session.UploadInfo, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded for %s: %w", set, domain.ErrNoData)
	}
	offset := s.vocab.HeaderOffset(string(set))
	if headerOffset != nil {
		offset = *headerOffset
	}

	result, err := s.ingester.Ingest(files, offset)
	if result != nil {
		s.recordMetrics(set, len(files), result)
	}
	if err != nil {
		if result != nil && len(result.Errors) > 0 {
			return nil, &IngestFailedError{Set: set, Files: result.Errors, Err: err}
		}
		return nil, err
	}

	table := result.Table
	res := s.resolver.ResolveAll(table, fieldsFor(set)...)
	upload := &session.Upload{
		Table:      table,
		Files:      result.Files,
		Errors:     result.Errors,
		Resolution: res,
		UploadedAt: time.Now(),
	}

	switch set {
	case session.SetOrders:
		added, err := s.classifier.EnsureRTOColumns(table, res)
		var missing *domain.MissingFieldError
		if err != nil && !errors.As(err, &missing) {
			return nil, err
		}
		upload.RTOAdded = added
		upload.Records = s.classifier.BuildOrders(table, res)
	case session.SetReturns:
		upload.Records = s.classifier.BuildOrders(table, res)
	case session.SetOld, session.SetNew, session.SetPayout:
		if err := res.Require(string(set)+" snapshot", matcher.SnapshotFields...); err != nil {
			logger.GetLogger().WithError(err).WithField("set", set).Warn("Snapshot cannot be reconciled")
		}
	}

	sess.SetUpload(set, upload)

	logger.GetLogger().WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"set":        set,
		"files":      len(files),
		"failed":     len(result.Errors),
		"rows":       table.Len(),
		"missing":    res.Missing(fieldsFor(set)...),
	}).Info("Upload processed")

	info := session.Info(set, upload)
	info.Missing = res.Missing(fieldsFor(set)...)
	return &info, nil
}

func (s *uploadService) recordMetrics(set session.FileSet, files int, result *parser.Result) {
	failed := len(result.Errors)
	for i := 0; i < files-failed; i++ {
		monitoring.RecordIngestFile(string(set), "ok")
	}
	for i := 0; i < failed; i++ {
		monitoring.RecordIngestFile(string(set), "error")
	}
	if result.Table != nil {
		monitoring.RecordIngestRows(string(set), result.Table.Len())
	}
}
