package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var analysisHeaders = []string{
	"Name", "Inputs", "Hiddens", "Layers", "Epochs", "EpochsRun", "LR", "BatchSize", "End Time", "SecondsToTrain", "Accuracy",
}

// RunRecord is one row of the training analysis log.
type RunRecord struct {
	Name      string
	Inputs    int
	Hidden    []int
	Epochs    int
	EpochsRun int
	LR        float64
	BatchSize int
	End       time.Time
	Duration  time.Duration
	Accuracy  float64
}

func (r RunRecord) fields() []string {
	hidden := make([]string, len(r.Hidden))
	for i, h := range r.Hidden {
		hidden[i] = strconv.Itoa(h)
	}
	return []string{
		r.Name,
		strconv.Itoa(r.Inputs),
		strings.Join(hidden, " "),
		strconv.Itoa(len(r.Hidden) + 1),
		strconv.Itoa(r.Epochs),
		strconv.Itoa(r.EpochsRun),
		strconv.FormatFloat(r.LR, 'f', 4, 64),
		strconv.Itoa(r.BatchSize),
		strconv.FormatInt(r.End.Unix(), 10),
		strconv.FormatFloat(r.Duration.Seconds(), 'f', 2, 64),
		strconv.FormatFloat(r.Accuracy, 'f', 5, 64),
	}
}

// AppendRunRecord appends r to the CSV at path, writing headers when the file
// is new.
func AppendRunRecord(path string, r RunRecord) error {
	var needsHeaders bool
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeaders = true
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(file)
	if needsHeaders {
		if err := w.Write(analysisHeaders); err != nil {
			file.Close()
			return fmt.Errorf("writing csv headers: %w", err)
		}
	}
	if err := w.Write(r.fields()); err != nil {
		file.Close()
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("error writing csv: %w", err)
	}
	return file.Close()
}
