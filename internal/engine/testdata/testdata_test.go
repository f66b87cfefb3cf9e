package testdata

import (
	"strings"
	"testing"
)

func TestSampleChatNotEmpty(t *testing.T) {
	chat := SampleChat()
	if chat == "" {
		t.Fatal("sample chat is empty")
	}
	if !strings.Contains(chat, "<Media omitted>") {
		t.Error("sample chat should contain a media placeholder")
	}
}

func TestSampleSummaryConsistent(t *testing.T) {
	s, err := SampleSummary()
	if err != nil {
		t.Fatalf("SampleSummary() error: %v", err)
	}
	if s.TotalRecords != s.TotalUserMessages+s.TotalSystemEvents {
		t.Errorf("total %d != user %d + system %d", s.TotalRecords, s.TotalUserMessages, s.TotalSystemEvents)
	}
	if s.TotalRecords > SampleRecords {
		t.Errorf("year-filtered total %d exceeds parsed records %d", s.TotalRecords, SampleRecords)
	}
	if s.LongestMessage == nil || s.MostUsedWord == nil || s.MostUsedEmoji == nil {
		t.Error("expected content statistics in sample summary")
	}
}
