// Package chatwrap summarizes exported WhatsApp chats into a year-in-review:
// who talked most, when the group was busiest, the longest message, and the
// favourite word and emoji.
//
// Quick start:
//
//	w, err := chatwrap.New(chatwrap.WithYear(2025))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := w.Summarize(exportText)
//	if errors.Is(err, chatwrap.ErrUnrecognizedFormat) {
//	    // not a chat export
//	}
//	fmt.Println(summary.TotalUserMessages)
//
// A Summarizer holds only immutable configuration and is safe for concurrent
// use. Create once, reuse across requests.
package chatwrap
