package output

import (
	"fmt"
	"strconv"

	"github.com/crimson-sun/chatwrap/internal/model"
)

// Field is one labelled line of a human-readable report.
type Field struct {
	Label string
	Value string
}

const none = "-"

// Fields flattens a report summary into labelled lines in display order.
// Absent statistics render as "-".
func Fields(r model.Report) []Field {
	s := r.Summary
	fields := []Field{
		{"Records", strconv.Itoa(s.TotalRecords)},
		{"Messages", strconv.Itoa(s.TotalUserMessages)},
		{"System events", strconv.Itoa(s.TotalSystemEvents)},
	}

	for i, t := range s.TopTalkers {
		fields = append(fields, Field{fmt.Sprintf("Top talker #%d", i+1), fmt.Sprintf("%s (%d)", t.Sender, t.Count)})
	}

	quietest := none
	if s.QuietestSender != nil {
		quietest = fmt.Sprintf("%s (%d)", s.QuietestSender.Sender, s.QuietestSender.Count)
	}
	fields = append(fields, Field{"Quietest", quietest})

	hour := none
	if s.BusiestHour.Hour != nil {
		hour = fmt.Sprintf("%02d:00 (%d)", *s.BusiestHour.Hour, s.BusiestHour.Count)
	}
	fields = append(fields, Field{"Busiest hour", hour})

	day := none
	if s.BusiestDayOfWeek.Day != nil {
		day = fmt.Sprintf("%s (%d)", *s.BusiestDayOfWeek.Day, s.BusiestDayOfWeek.Count)
	}
	fields = append(fields, Field{"Busiest day", day})

	month := none
	if s.PeakMonth.Label != nil {
		month = fmt.Sprintf("%s (%d)", *s.PeakMonth.Label, s.PeakMonth.Count)
	}
	fields = append(fields, Field{"Peak month", month})

	fields = append(fields, Field{"Night owl", fmt.Sprintf("%d (%s%%)",
		s.NightOwl.Count, strconv.FormatFloat(s.NightOwl.Percent, 'f', 2, 64))})

	longest := none
	if s.LongestMessage != nil {
		longest = fmt.Sprintf("%s, %d chars: %s", s.LongestMessage.Sender, s.LongestMessage.LengthChars, s.LongestMessage.Preview)
	}
	fields = append(fields, Field{"Longest message", longest})

	word := none
	if s.MostUsedWord != nil {
		word = fmt.Sprintf("%s (%d)", s.MostUsedWord.Word, s.MostUsedWord.Count)
	}
	fields = append(fields, Field{"Top word", word})

	emoji := none
	if s.MostUsedEmoji != nil {
		emoji = fmt.Sprintf("%s (%d)", s.MostUsedEmoji.Emoji, s.MostUsedEmoji.Count)
	}
	fields = append(fields, Field{"Top emoji", emoji})

	return fields
}
