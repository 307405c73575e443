package recordio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Record is one hash's outcome, keyed by hash in the output file.
type Record struct {
	CrackedPassword *string `json:"cracked_password"`
	Status          string  `json:"status"`
	JobID           string  `json:"job_id"`
}

// WriteOutputFile writes records as a JSON object keyed by hash.
func WriteOutputFile(path string, records map[string]Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// PrintConsole writes the human-readable "<hash> <password|NOT_FOUND|...>
// <job_id>" line for one record.
func PrintConsole(w io.Writer, hash string, rec Record) {
	display := rec.Status
	if rec.CrackedPassword != nil {
		display = *rec.CrackedPassword
	}
	fmt.Fprintf(w, "%s %s %s\n", hash, display, rec.JobID)
}
