package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SetsLevel(t *testing.T) {
	Init("debug")
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	Init("not-a-level")
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}

func TestLogError_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := GetLogger()
	l.SetOutput(&buf)
	defer l.SetOutput(os.Stdout)
	Init("info")

	LogError("parser", "Ingest", "reading file", map[string]string{"file": "a.csv"}, errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "parser", entry["module"])
	assert.Equal(t, "Ingest", entry["funcName"])
	assert.Equal(t, "error", entry["level"])
}
