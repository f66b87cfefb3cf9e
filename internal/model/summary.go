package model

// Summary is the aggregate result for one chat export. Nullable statistics
// are pointers so they encode as JSON null when nothing qualified.
type Summary struct {
	TotalRecords      int `json:"total_records"`
	TotalUserMessages int `json:"total_user_messages"`
	TotalSystemEvents int `json:"total_system_events"`

	TopTalkers     []SenderCount `json:"top_talkers"`
	QuietestSender *SenderCount  `json:"quietest_sender"`

	BusiestHour      HourCount  `json:"busiest_hour"`
	BusiestDayOfWeek DayCount   `json:"busiest_day_of_week"`
	PeakMonth        MonthCount `json:"peak_month"`

	NightOwl NightOwl `json:"night_owl"`

	LongestMessage *LongestMessage `json:"longest_message"`
	MostUsedWord   *WordCount      `json:"most_used_word"`
	MostUsedEmoji  *EmojiCount     `json:"most_used_emoji"`
}

type SenderCount struct {
	Sender string `json:"sender"`
	Count  int    `json:"count"`
}

type HourCount struct {
	Hour  *int `json:"hour"`
	Count int  `json:"count"`
}

type DayCount struct {
	Day   *string `json:"day"`
	Count int     `json:"count"`
}

type MonthCount struct {
	Year  *int    `json:"year"`
	Month *int    `json:"month"`
	Label *string `json:"label"`
	Count int     `json:"count"`
}

// NightOwl counts messages sent between 22:00 and 04:59.
type NightOwl struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type LongestMessage struct {
	Sender      string `json:"sender"`
	Timestamp   string `json:"timestamp"` // ISO-8601, no zone
	LengthChars int    `json:"length_chars"`
	Preview     string `json:"preview"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmptySummary returns the defined shape for an export in which no user
// message qualified: zero counts and null selections.
func EmptySummary(totalRecords, systemEvents int) Summary {
	return Summary{
		TotalRecords:      totalRecords,
		TotalSystemEvents: systemEvents,
		TopTalkers:        []SenderCount{},
	}
}
