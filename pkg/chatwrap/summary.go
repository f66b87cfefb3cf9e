package chatwrap

import "github.com/crimson-sun/chatwrap/internal/model"

// Summary is the statistics computed for one export. Selections that had
// nothing to select from are nil and encode as JSON null.
type Summary = model.Summary

type (
	SenderCount    = model.SenderCount
	HourCount      = model.HourCount
	DayCount       = model.DayCount
	MonthCount     = model.MonthCount
	NightOwl       = model.NightOwl
	LongestMessage = model.LongestMessage
	WordCount      = model.WordCount
	EmojiCount     = model.EmojiCount
)
