// Package testdata embeds a small chat export and the summary it must produce.
package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/chatwrap/internal/model"
)

//go:embed sample_chat.txt
var sampleChat string

//go:embed sample_summary.json
var sampleSummaryJSON []byte

// SampleRecords is the number of records the parser must find in SampleChat,
// before any year filtering.
const SampleRecords = 19

// SampleChat returns the embedded export. It spans 2024 to 2026, includes a
// preamble line, system events, media placeholders and multi-line messages.
func SampleChat() string {
	return sampleChat
}

// SampleSummary returns the expected summary of SampleChat for year 2025.
func SampleSummary() (model.Summary, error) {
	var s model.Summary
	if err := json.Unmarshal(sampleSummaryJSON, &s); err != nil {
		return model.Summary{}, fmt.Errorf("parse sample_summary.json: %w", err)
	}
	return s, nil
}
