package utils

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRunRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.csv")
	rec := RunRecord{
		Name:      "weather",
		Inputs:    4,
		Hidden:    []int{8, 4},
		Epochs:    1000,
		EpochsRun: 57,
		LR:        0.05,
		BatchSize: 20,
		End:       time.Unix(1700000000, 0),
		Duration:  1500 * time.Millisecond,
		Accuracy:  0.8125,
	}
	require.NoError(t, AppendRunRecord(path, rec))
	require.NoError(t, AppendRunRecord(path, rec))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "one header and two records")
	assert.Equal(t, analysisHeaders, rows[0])
	assert.Equal(t, []string{"weather", "4", "8 4", "3", "1000", "57", "0.0500", "20", "1700000000", "1.50", "0.81250"}, rows[1])
	assert.Equal(t, rows[1], rows[2])
}
