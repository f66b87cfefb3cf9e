package rules

import "unicode"

// space matches any single whitespace rune, including no-break and narrow
// no-break spaces some exports put after the comma or bracket.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// headerPattern matches "[YYYY/MM/DD, HH:MM:SS] SENDER: MESSAGE".
const headerPattern = `^\[(\d{4}/\d{2}/\d{2}),` + space + `(\d{2}:\d{2}:\d{2})\]` + space + `([^:]+?):` + space + `(.*)$`

// adminActionPatterns are matched case-insensitively anywhere in a message.
// The match is deliberately loose: "John added a photo" is a system event.
var adminActionPatterns = []string{
	"created this group",
	"added",
	"removed",
	"changed",
	"promoted",
	"omitted",
	"made.*admin",
}

// mediaPlaceholders are compared after stripping U+200E and surrounding whitespace.
var mediaPlaceholders = []string{
	"<Media omitted>",
	"\u200e<Media omitted>",
	"image omitted",
	"video omitted",
	"sticker omitted",
}

var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "to", "of", "in", "on", "for", "with", "is", "it", "this", "that",
	"i", "you", "he", "she", "we", "they", "me", "my", "your", "our", "us", "at", "as", "be", "are", "was",
	"were", "so", "not", "do", "does", "did", "from", "by", "if", "then", "im", "i'm", "u", "ur", "lol",
	"bro", "brev",
}

// emojiTable covers misc symbols, dingbats, regional indicators, pictographs,
// emoticons and transport symbols.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}
