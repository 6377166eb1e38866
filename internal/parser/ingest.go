package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"meesho-recon/internal/domain"
	"meesho-recon/pkg/logger"
)

// Format is the container format of an uploaded file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs magic bytes first and falls back to the extension.
func DetectFormat(name string, data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, ole2Magic):
		return FormatXLS
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	}
	return FormatCSV
}

// FileBlob is one uploaded file. Either Data holds the content or Open
// yields it; Open is only called once Size has passed the size ceiling.
type FileBlob struct {
	Name string
	Data []byte
	Size int64
	Open func() (io.ReadCloser, error)
}

func (b FileBlob) size() int64 {
	if b.Size > 0 {
		return b.Size
	}
	return int64(len(b.Data))
}

// load fills Data from Open, reading at most maxBytes+1 bytes so that a
// misreported Size cannot pull an oversized file into memory.
func (b *FileBlob) load(maxBytes int64) error {
	if b.Data != nil || b.Open == nil {
		return nil
	}
	rc, err := b.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if maxBytes > 0 {
		r = io.LimitReader(rc, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("more than %d bytes: %w", maxBytes, domain.ErrFileTooLarge)
	}
	b.Data = data
	return nil
}

// FileSummary reports what ingestion did with one file.
type FileSummary struct {
	Name              string `json:"name"`
	Format            Format `json:"format"`
	Encoding          string `json:"encoding,omitempty"`
	Rows              int    `json:"rows"`
	DroppedHeaderRows int    `json:"dropped_header_rows"`
	MissingColumns    int    `json:"missing_columns"`
}

// Result is the merged table plus per-file outcomes. Files that failed are
// listed in Errors and contributed no rows.
type Result struct {
	Table  *domain.Table       `json:"table"`
	Files  []FileSummary       `json:"files"`
	Errors []*domain.FileError `json:"errors,omitempty"`
}

// Ingester merges uploaded order exports into one canonical table.
type Ingester struct {
	maxBytes int64
}

// NewIngester returns an ingester rejecting files larger than maxBytes.
// A non-positive ceiling disables the check.
func NewIngester(maxBytes int64) *Ingester {
	return &Ingester{maxBytes: maxBytes}
}

// Ingest reads every file, skipping headerOffset leading rows in each. The
// first readable file's header is canonical; later files are realigned to
// it. An error is returned only when no file could be read.
func (i *Ingester) Ingest(files []FileBlob, headerOffset int) (*Result, error) {
	if headerOffset < 0 {
		return nil, fmt.Errorf("header offset must not be negative: %d", headerOffset)
	}

	result := &Result{
		Files:  make([]FileSummary, 0, len(files)),
		Errors: make([]*domain.FileError, 0),
	}

	var canonical []string
	for _, file := range files {
		if i.maxBytes > 0 && file.size() > i.maxBytes {
			result.Errors = append(result.Errors, &domain.FileError{
				File: file.Name,
				Kind: domain.KindFileTooLarge,
				Err:  fmt.Errorf("%d bytes over ceiling of %d: %w", file.size(), i.maxBytes, domain.ErrFileTooLarge),
			})
			logger.GetLogger().WithField("file", file.Name).Warn("File exceeds upload size ceiling, skipping")
			continue
		}
		if err := file.load(i.maxBytes); err != nil {
			kind := domain.KindIngestion
			if errors.Is(err, domain.ErrFileTooLarge) {
				kind = domain.KindFileTooLarge
			}
			result.Errors = append(result.Errors, &domain.FileError{File: file.Name, Kind: kind, Err: err})
			logger.GetLogger().WithError(err).WithField("file", file.Name).Warn("Failed to load file, skipping")
			continue
		}

		rows, summary, err := readRows(file)
		if err != nil {
			result.Errors = append(result.Errors, &domain.FileError{File: file.Name, Kind: domain.KindIngestion, Err: err})
			logger.GetLogger().WithError(err).WithField("file", file.Name).Warn("Failed to read file, skipping")
			continue
		}

		if len(rows) <= headerOffset {
			result.Errors = append(result.Errors, &domain.FileError{
				File: file.Name,
				Kind: domain.KindIngestion,
				Err:  fmt.Errorf("no header row after skipping %d rows: %w", headerOffset, domain.ErrNoData),
			})
			continue
		}

		header := normalizeHeader(rows[headerOffset])
		if canonical == nil {
			canonical = header
			result.Table = domain.NewTable(canonical)
		}

		positions, missing := alignColumns(canonical, header)
		summary.MissingColumns = missing
		canonicalLine := strings.Join(canonical, "|")

		for _, raw := range rows[headerOffset+1:] {
			if isEmptyRow(raw) {
				continue
			}
			aligned := make([]string, len(canonical))
			present := make([]bool, len(canonical))
			for c, pos := range positions {
				if pos >= 0 && pos < len(raw) {
					aligned[c] = strings.TrimSpace(raw[pos])
					present[c] = true
				}
			}
			if strings.Join(aligned, "|") == canonicalLine {
				summary.DroppedHeaderRows++
				continue
			}

			cells := make([]domain.Value, len(canonical))
			for c := range aligned {
				if !present[c] {
					cells[c] = domain.Null()
					continue
				}
				cells[c] = CoerceCell(aligned[c])
			}
			result.Table.Rows = append(result.Table.Rows, cells)
			summary.Rows++
		}

		result.Files = append(result.Files, summary)
		logger.GetLogger().WithFields(map[string]interface{}{
			"file":                file.Name,
			"format":              summary.Format,
			"encoding":            summary.Encoding,
			"rows":                summary.Rows,
			"dropped_header_rows": summary.DroppedHeaderRows,
			"missing_columns":     summary.MissingColumns,
		}).Info("File ingested")
	}

	if result.Table == nil {
		result.Table = domain.NewTable(nil)
		return result, fmt.Errorf("none of %d file(s) could be ingested: %w", len(files), domain.ErrNoData)
	}
	return result, nil
}

func readRows(file FileBlob) ([][]string, FileSummary, error) {
	format := DetectFormat(file.Name, file.Data)
	summary := FileSummary{Name: file.Name, Format: format}

	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(file.Data)
	case FormatXLS:
		rows, err = readXLS(file.Data)
	default:
		rows, summary.Encoding, err = readCSV(file.Name, file.Data)
	}
	return rows, summary, err
}

// normalizeHeader trims names, names blank headers and suffixes repeats.
func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		header[i] = name
	}
	return header
}

// alignColumns maps each canonical column to its position in header, or -1.
func alignColumns(canonical, header []string) ([]int, int) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	positions := make([]int, len(canonical))
	missing := 0
	for c, name := range canonical {
		pos, ok := index[name]
		if !ok {
			pos = -1
			missing++
		}
		positions[c] = pos
	}
	return positions, missing
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
