package export

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/pkg/logger"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Exporter renders one or more titled tables into a single document.
type Exporter interface {
	Format() Format
	ContentType() string
	Export(w io.Writer, title string, tables []domain.NamedTable) error
}

// FormatInfo reports whether a format can currently be produced.
type FormatInfo struct {
	Format    Format `json:"format"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Registry holds the exporters of the process. A format can be switched off
// with a reason; asking for it then fails with domain.ErrExportUnavailable
// and names the formats that still work.
type Registry struct {
	exporters map[Format]Exporter
	disabled  map[Format]string
}

func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{
		exporters: make(map[Format]Exporter),
		disabled:  make(map[Format]string),
	}
	for _, e := range exporters {
		r.exporters[e.Format()] = e
	}
	return r
}

// NewDefaultRegistry registers the workbook and PDF exporters.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewWorkbookExporter(), NewPDFExporter())
}

func (r *Registry) Disable(f Format, reason string) {
	r.disabled[f] = reason
	logger.GetLogger().WithFields(map[string]interface{}{
		"format": f,
		"reason": reason,
	}).Warn("Export format disabled")
}

func (r *Registry) Get(f Format) (Exporter, error) {
	e, ok := r.exporters[f]
	reason, off := r.disabled[f]
	switch {
	case !ok:
		reason = "not installed"
	case off:
	default:
		return e, nil
	}

	available := make([]string, 0)
	for _, info := range r.Formats() {
		if info.Available {
			available = append(available, string(info.Format))
		}
	}
	return nil, fmt.Errorf("%s export %s (available: %s): %w",
		f, reason, strings.Join(available, ", "), domain.ErrExportUnavailable)
}

// Formats lists every known format, sorted.
func (r *Registry) Formats() []FormatInfo {
	seen := make(map[Format]bool)
	for f := range r.exporters {
		seen[f] = true
	}
	for f := range r.disabled {
		seen[f] = true
	}
	out := make([]FormatInfo, 0, len(seen))
	for f := range seen {
		_, ok := r.exporters[f]
		reason, off := r.disabled[f]
		if !ok && !off {
			reason = "not installed"
		}
		out = append(out, FormatInfo{Format: f, Available: ok && !off, Reason: reason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format < out[j].Format })
	return out
}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

func cleanText(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

// Truncate shortens s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}
	return string([]rune(s)[:limit-3]) + "..."
}

// FormatNumber renders integers without decimals and everything else with two.
func FormatNumber(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.Truncate(0).String()
	}
	return d.StringFixed(2)
}
