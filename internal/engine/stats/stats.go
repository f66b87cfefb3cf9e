// Package stats derives the usage summary from the user messages of one export.
package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crimson-sun/chatwrap/internal/engine/classifier"
	"github.com/crimson-sun/chatwrap/internal/engine/compactor"
	"github.com/crimson-sun/chatwrap/internal/engine/filter"
	"github.com/crimson-sun/chatwrap/internal/engine/tokenizer"
	"github.com/crimson-sun/chatwrap/internal/model"
)

const (
	DefaultTopTalkers = 10
	isoLayout         = "2006-01-02T15:04:05"
)

// dayNames is indexed Monday=0 .. Sunday=6.
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Options tunes the summary shape.
type Options struct {
	TopTalkers   int // number of senders in TopTalkers
	PreviewChars int // longest-message preview length
}

// Engine computes summaries. It keeps no state between calls.
type Engine struct {
	classifier *classifier.Classifier
	tokenizer  *tokenizer.Tokenizer
	opts       Options
}

// New creates an Engine. Zero options fall back to the defaults.
func New(cls *classifier.Classifier, tok *tokenizer.Tokenizer, opts Options) *Engine {
	if opts.TopTalkers <= 0 {
		opts.TopTalkers = DefaultTopTalkers
	}
	if opts.PreviewChars <= 0 {
		opts.PreviewChars = compactor.DefaultPreviewChars
	}
	return &Engine{classifier: cls, tokenizer: tok, opts: opts}
}

type monthKey struct {
	year  int
	month time.Month
}

// accumulator collects every frequency table in one pass over the messages.
type accumulator struct {
	senders  *Counter[string]
	hours    *Counter[int]
	weekdays *Counter[int]
	months   *Counter[monthKey]
	words    *Counter[string]
	emojis   *Counter[string]
	night    int
	longest  *model.Record
	longLen  int
}

func newAccumulator() *accumulator {
	return &accumulator{
		senders:  NewCounter[string](),
		hours:    NewCounter[int](),
		weekdays: NewCounter[int](),
		months:   NewCounter[monthKey](),
		words:    NewCounter[string](),
		emojis:   NewCounter[string](),
	}
}

// Compute builds the summary for a filtered partition. An empty user-message
// set yields the empty summary, never an error.
func (e *Engine) Compute(p filter.Partition) model.Summary {
	if len(p.User) == 0 {
		return model.EmptySummary(p.Total, len(p.System))
	}

	acc := newAccumulator()
	for i := range p.User {
		e.observe(acc, &p.User[i])
	}

	s := model.Summary{
		TotalRecords:      p.Total,
		TotalUserMessages: len(p.User),
		TotalSystemEvents: len(p.System),
	}

	for _, ent := range acc.senders.MostCommon(e.opts.TopTalkers) {
		s.TopTalkers = append(s.TopTalkers, model.SenderCount{Sender: ent.Key, Count: ent.Count})
	}
	if q, ok := acc.senders.Min(); ok {
		s.QuietestSender = &model.SenderCount{Sender: q.Key, Count: q.Count}
	}

	if h, ok := acc.hours.Max(); ok {
		hour := h.Key
		s.BusiestHour = model.HourCount{Hour: &hour, Count: h.Count}
	}
	if d, ok := acc.weekdays.Max(); ok {
		day := dayNames[d.Key]
		s.BusiestDayOfWeek = model.DayCount{Day: &day, Count: d.Count}
	}
	if m, ok := acc.months.Max(); ok {
		year, month := m.Key.year, int(m.Key.month)
		label := fmt.Sprintf("%s %04d", m.Key.month, m.Key.year)
		s.PeakMonth = model.MonthCount{Year: &year, Month: &month, Label: &label, Count: m.Count}
	}

	s.NightOwl = model.NightOwl{
		Count:   acc.night,
		Percent: percent(acc.night, len(p.User)),
	}

	if acc.longest != nil {
		s.LongestMessage = &model.LongestMessage{
			Sender:      acc.longest.Sender,
			Timestamp:   acc.longest.Timestamp.Format(isoLayout),
			LengthChars: acc.longLen,
			Preview:     compactor.Preview(acc.longest.Message, e.opts.PreviewChars),
		}
	}
	if w, ok := acc.words.Max(); ok {
		s.MostUsedWord = &model.WordCount{Word: w.Key, Count: w.Count}
	}
	if em, ok := acc.emojis.Max(); ok {
		s.MostUsedEmoji = &model.EmojiCount{Emoji: em.Key, Count: em.Count}
	}
	return s
}

// observe folds one user message into the accumulator. Media placeholders
// count toward activity statistics but not toward content statistics.
func (e *Engine) observe(acc *accumulator, rec *model.Record) {
	ts := rec.Timestamp
	acc.senders.Add(rec.Sender)
	acc.hours.Add(ts.Hour())
	acc.weekdays.Add(weekdayIndex(ts.Weekday()))
	acc.months.Add(monthKey{year: ts.Year(), month: ts.Month()})
	if IsNightOwl(ts) {
		acc.night++
	}

	if e.classifier.IsMedia(rec.Message) {
		return
	}
	if n := compactor.Length(rec.Message); acc.longest == nil || n > acc.longLen {
		acc.longest = rec
		acc.longLen = n
	}
	acc.words.AddAll(e.tokenizer.Tokenize(rec.Message))
	acc.emojis.AddAll(e.tokenizer.Emojis(rec.Message))
}

// IsNightOwl reports whether ts falls in 22:00-04:59.
func IsNightOwl(ts time.Time) bool {
	h := ts.Hour()
	return h >= 22 || h <= 4
}

// weekdayIndex maps time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func weekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// percent returns part/total*100 rounded to two decimals by the exact
// binary value of the float quotient.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	f := float64(part) / float64(total) * 100
	p, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', 2, 64))
	if err != nil {
		return 0
	}
	return p.InexactFloat64()
}
