package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"meesho-recon/pkg/logger"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// readCSV decodes a CSV blob as UTF-8 and retries once as Latin-1.
func readCSV(name string, data []byte) ([][]string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var firstErr error
	if utf8.Valid(data) {
		rows, err := parseCSV(bytes.NewReader(data))
		if err == nil {
			return rows, EncodingUTF8, nil
		}
		firstErr = err
	} else {
		firstErr = fmt.Errorf("invalid utf-8 byte sequence")
	}

	logger.GetLogger().WithError(firstErr).WithField("file", name).Warn("CSV not readable as UTF-8, retrying as Latin-1")

	rows, err := parseCSV(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read csv as %s or %s: %w", EncodingUTF8, EncodingLatin1, err)
	}
	return rows, EncodingLatin1, nil
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows := make([][]string, 0)
	lineNumber := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNumber++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
