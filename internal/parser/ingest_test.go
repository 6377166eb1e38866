package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"meesho-recon/internal/domain"
)

func csvBlob(name string, lines ...string) FileBlob {
	return FileBlob{Name: name, Data: []byte(strings.Join(lines, "\n") + "\n")}
}

func TestIngester_AlignsLaterFilesToFirstHeader(t *testing.T) {
	a := csvBlob("a.csv",
		"Sub Order No,Live Order Status,Final Settlement Amount",
		"O1,Delivered,500",
	)
	b := csvBlob("b.csv",
		"Final Settlement Amount,Sub Order No,Extra",
		"300,O3,ignored",
	)

	result, err := NewIngester(0).Ingest([]FileBlob{a, b}, 0)
	require.NoError(t, err)

	tbl := result.Table
	assert.Equal(t, []string{"Sub Order No", "Live Order Status", "Final Settlement Amount"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())

	second := tbl.Rows[1]
	assert.Equal(t, "O3", second[0].String())
	assert.True(t, second[1].IsNull(), "column absent from b must be null")
	amount, ok := second[2].Decimal()
	require.True(t, ok)
	assert.Equal(t, "300", amount.String())

	require.Len(t, result.Files, 2)
	assert.Equal(t, 1, result.Files[1].MissingColumns)
}

func TestIngester_DropsEmbeddedHeaderRows(t *testing.T) {
	a := csvBlob("a.csv",
		"Sub Order No,Status,Amount",
		"O1,Delivered,100",
		"Sub Order No,Status,Amount",
		"O2,Return,-50",
		",,",
	)
	b := csvBlob("b.csv",
		"Amount,Status,Sub Order No",
		"Amount,Status,Sub Order No",
		"20,Shipped,O3",
	)

	result, err := NewIngester(0).Ingest([]FileBlob{a, b}, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Table.Len())
	assert.Equal(t, 1, result.Files[0].DroppedHeaderRows)
	assert.Equal(t, 1, result.Files[1].DroppedHeaderRows)
	for _, row := range result.Table.Rows {
		assert.NotEqual(t, "Sub Order No", row[0].String())
	}
}

func TestIngester_HeaderOffset(t *testing.T) {
	lines := []string{}
	for i := 0; i < 7; i++ {
		lines = append(lines, "Report generated for supplier")
	}
	lines = append(lines, "Sub Order No,Reason for Credit Entry,Quantity", "O1,DAMAGED,2")

	result, err := NewIngester(0).Ingest([]FileBlob{csvBlob("returns.csv", lines...)}, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sub Order No", "Reason for Credit Entry", "Quantity"}, result.Table.Columns)
	assert.Equal(t, 1, result.Table.Len())
}

func TestIngester_Latin1Fallback(t *testing.T) {
	data := []byte("Sub Order No,State\nO1,Tamil N\xe9du\n")

	result, err := NewIngester(0).Ingest([]FileBlob{{Name: "legacy.csv", Data: data}}, 0)
	require.NoError(t, err)

	assert.Equal(t, EncodingLatin1, result.Files[0].Encoding)
	assert.Equal(t, "Tamil Nédu", result.Table.Rows[0][1].String())
}

func TestIngester_BadFilesDoNotAbortBatch(t *testing.T) {
	good := csvBlob("good.csv", "Sub Order No,Amount", "O1,10")
	corrupt := FileBlob{Name: "broken.xlsx", Data: []byte("PK\x03\x04not really a zip")}
	big := FileBlob{Name: "big.csv", Data: []byte(strings.Repeat("x", 200))}

	result, err := NewIngester(100).Ingest([]FileBlob{corrupt, good, big}, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Table.Len())
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "broken.xlsx", result.Errors[0].File)
	assert.Equal(t, domain.KindIngestion, result.Errors[0].Kind)
	assert.Equal(t, domain.KindFileTooLarge, result.Errors[1].Kind)
	assert.True(t, errors.Is(result.Errors[1], domain.ErrFileTooLarge))
}

func lazyBlob(name string, size int64, content string, opened *int) FileBlob {
	return FileBlob{
		Name: name,
		Size: size,
		Open: func() (io.ReadCloser, error) {
			*opened++
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestIngester_OversizedFileIsNeverOpened(t *testing.T) {
	var bigOpened, goodOpened int
	content := "Sub Order No,Amount\nO1,10\n"
	big := lazyBlob("big.csv", 2<<20, strings.Repeat("x", 2<<20), &bigOpened)
	good := lazyBlob("good.csv", int64(len(content)), content, &goodOpened)

	result, err := NewIngester(1<<20).Ingest([]FileBlob{big, good}, 0)
	require.NoError(t, err)

	assert.Zero(t, bigOpened, "declared size over the ceiling skips the read")
	assert.Equal(t, 1, goodOpened)
	assert.Equal(t, 1, result.Table.Len())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.KindFileTooLarge, result.Errors[0].Kind)
}

func TestIngester_UnderstatedSizeStopsAtCeiling(t *testing.T) {
	var opened int
	blob := lazyBlob("liar.csv", 10, strings.Repeat("x", 500), &opened)

	result, err := NewIngester(100).Ingest([]FileBlob{blob}, 0)
	require.Error(t, err)
	assert.Equal(t, 1, opened)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.KindFileTooLarge, result.Errors[0].Kind)
	assert.True(t, errors.Is(result.Errors[0], domain.ErrFileTooLarge))
}

func TestIngester_AllFilesFail(t *testing.T) {
	result, err := NewIngester(0).Ingest([]FileBlob{{Name: "empty.csv", Data: []byte("")}}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoData))
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Table.Len())
}

func TestIngester_ReadsXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Sub Order No", "Final Settlement Amount"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"O1", "₹1,250.50"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := NewIngester(0).Ingest([]FileBlob{{Name: "orders.bin", Data: buf.Bytes()}}, 0)
	require.NoError(t, err)

	assert.Equal(t, FormatXLSX, result.Files[0].Format)
	amount, ok := result.Table.Rows[0][1].Decimal()
	require.True(t, ok)
	assert.Equal(t, "1250.5", amount.String())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, DetectFormat("x.csv", []byte("PK\x03\x04...")))
	assert.Equal(t, FormatXLS, DetectFormat("x", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0}))
	assert.Equal(t, FormatXLS, DetectFormat("x.XLS", []byte("abc")))
	assert.Equal(t, FormatCSV, DetectFormat("x.txt", []byte("a,b")))
}
