package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"meesho-recon/internal/domain"
)

// MaxSheetNameLength is the sheet name limit of the workbook format.
const MaxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "",
)

// SanitizeSheetName strips characters workbooks reject and cuts the name to
// 31 characters. Names already used get a numeric suffix.
func SanitizeSheetName(name string, used map[string]bool) string {
	base := strings.Trim(strings.TrimSpace(sheetNameReplacer.Replace(cleanText(name))), "'")
	if base == "" {
		base = "Sheet"
	}
	base = cut(base, MaxSheetNameLength)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		candidate = cut(base, MaxSheetNameLength-utf8.RuneCountInString(suffix)) + suffix
	}
	if used != nil {
		used[strings.ToLower(candidate)] = true
	}
	return candidate
}

func cut(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

type workbookExporter struct{}

func NewWorkbookExporter() Exporter {
	return &workbookExporter{}
}

func (e *workbookExporter) Format() Format {
	return FormatXLSX
}

func (e *workbookExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes one sheet per table. Null cells stay empty; zeros are written.
func (e *workbookExporter) Export(w io.Writer, title string, tables []domain.NamedTable) error {
	if len(tables) == 0 {
		return fmt.Errorf("nothing to export: %w", domain.ErrNoData)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{Title: cleanText(title), Creator: "meesho-recon"}); err != nil {
		return fmt.Errorf("failed to set workbook properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	used := make(map[string]bool)
	for i, nt := range tables {
		sheet := SanitizeSheetName(nt.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, nt.Table, headerStyle, numberStyle); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, t *domain.Table, headerStyle, numberStyle int) error {
	if t == nil {
		t = domain.NewTable(nil)
	}
	for c, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, cleanText(name)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if d, ok := v.Decimal(); ok && v.IsNumber() {
				if err := f.SetCellValue(sheet, cell, d.InexactFloat64()); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, numberStyle); err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellValue(sheet, cell, cleanText(v.String())); err != nil {
				return err
			}
		}
	}

	if len(t.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
