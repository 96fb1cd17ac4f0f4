package pipeline

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/width"
)

// WideClass reports whether a rune counts as a wide character for line joining.
type WideClass interface {
	IsWide(r rune) bool
}

// WideClassFunc adapts a plain function to WideClass.
type WideClassFunc func(r rune) bool

// IsWide calls f(r).
func (f WideClassFunc) IsWide(r rune) bool { return f(r) }

// wideRanges lists general punctuation, CJK symbols and punctuation, kana and
// bopomofo, enclosed CJK letters, CJK unified ideographs (extension A and base),
// Hangul syllables, CJK compatibility ideographs and halfwidth/fullwidth forms.
var wideRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2000, Hi: 0x206f, Stride: 1},
		{Lo: 0x3000, Hi: 0x312f, Stride: 1},
		{Lo: 0x3200, Hi: 0x32ff, Stride: 1},
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
		{Lo: 0xac00, Hi: 0xd7af, Stride: 1},
		{Lo: 0xf900, Hi: 0xfaff, Stride: 1},
		{Lo: 0xff00, Hi: 0xffee, Stride: 1},
	},
}

// RangeClass is the fixed code point table used by default.
var RangeClass WideClass = WideClassFunc(func(r rune) bool {
	return unicode.Is(wideRanges, r)
})

// EastAsianWidthClass treats every rune whose East Asian Width property is
// Wide or Fullwidth as wide. Unlike RangeClass it covers ideographs outside
// the BMP and excludes general punctuation.
var EastAsianWidthClass WideClass = WideClassFunc(func(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
})

// Wide class names accepted by WideClassByName.
const (
	WideClassRanges    = "ranges"
	WideClassEastAsian = "east-asian"
)

// WideClassByName resolves a configured class name. Empty means ranges.
func WideClassByName(name string) (WideClass, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WideClassRanges:
		return RangeClass, true
	case WideClassEastAsian:
		return EastAsianWidthClass, true
	}
	return nil, false
}

// fencePattern matches a fenced block together with its leading blank run
// and trailing line breaks. The opening run is maximal, so "````" never opens
// as "```". The closing fence must repeat the opening run (\2); a longer
// closing run also closes because the extra delimiters fall into the lazy
// content group. Blanks are spelled out so U+3000 never counts as padding.
const fencePattern = "([ \\t\\r\\n\\f\\v]*)" +
	"((?<!`)`{3,}(?!`)|(?<!~)~{3,}(?!~))" +
	" *(.*) *\\n" +
	"([\\s\\S]+?)" +
	"[ \\t\\r\\n\\f\\v]*\\2((?:\\r?\\n)+|\\z)"

// fenceMatchTimeout bounds backtracking on pathological unterminated fences.
const fenceMatchTimeout = 2 * time.Second

// segment is a slice of source text that is either prose or a fenced block.
type segment struct {
	text   string
	fenced bool
}

// CJKJoiner removes line breaks that wrap between two wide characters.
// It is stateless and safe for concurrent use.
type CJKJoiner struct {
	class WideClass
	fence *regexp2.Regexp
}

// NewCJKJoiner creates a joiner for the given class. A nil class means RangeClass.
func NewCJKJoiner(class WideClass) *CJKJoiner {
	if class == nil {
		class = RangeClass
	}
	fence := regexp2.MustCompile(fencePattern, regexp2.None)
	fence.MatchTimeout = fenceMatchTimeout
	return &CJKJoiner{class: class, fence: fence}
}

var defaultJoiner = NewCJKJoiner(RangeClass)

// JoinCJKLines applies the default joiner to text.
func JoinCJKLines(text string) string {
	return defaultJoiner.Join(text)
}

// Join returns text with every "<wide>[ \t]*<break>[ \t]*<wide>" site collapsed
// so both wide characters become adjacent. A break is "\n" or "\r\n".
// Fenced blocks are copied verbatim, delimiters included.
func (j *CJKJoiner) Join(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range j.split(text) {
		if seg.fenced {
			b.WriteString(seg.text)
			continue
		}
		j.joinInto(&b, seg.text)
	}
	return b.String()
}

// split cuts text into prose and fenced segments in source order.
// Concatenating the segments reproduces text exactly, invalid UTF-8
// included.
//
// A fence without a matching closer never matches, so its body stays prose.
// If the matcher times out, the rest of the text is treated as prose.
func (j *CJKJoiner) split(text string) []segment {
	runes, offsets := decodeRunes(text)
	var segs []segment
	start := 0

	m, err := j.fence.FindRunesMatch(runes)
	for err == nil && m != nil {
		from, to := offsets[m.Index], offsets[m.Index+m.Length]
		if from > start {
			segs = append(segs, segment{text: text[start:from]})
		}
		segs = append(segs, segment{text: text[from:to], fenced: true})
		start = to
		m, err = j.fence.FindNextMatch(m)
	}

	if start < len(text) {
		segs = append(segs, segment{text: text[start:]})
	}
	return segs
}

// decodeRunes returns the runes of s with the byte offset of each one.
// offsets has one extra entry holding len(s). An invalid byte decodes to a
// single utf8.RuneError, so rune indices stay aligned with the source.
func decodeRunes(s string) ([]rune, []int) {
	runes := make([]rune, 0, len(s))
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
	}
	return runes, append(offsets, len(s))
}

// joinInto writes prose to b, applying the join rule at every site.
// After a join the second wide rune is scanned again, so dense runs such as
// "一\n二\n三" collapse in one pass.
func (j *CJKJoiner) joinInto(b *strings.Builder, prose string) {
	i := 0
	for i < len(prose) {
		r, size := utf8.DecodeRuneInString(prose[i:])
		b.WriteString(prose[i : i+size])
		i += size

		if !j.class.IsWide(r) {
			continue
		}
		if next, ok := j.joinSite(prose, i); ok {
			i = next
		}
	}
}

// joinSite inspects prose starting right after a wide rune. When a single
// line break, optionally surrounded by spaces or tabs, leads to another wide
// rune it returns the offset of that rune.
func (j *CJKJoiner) joinSite(prose string, from int) (int, bool) {
	k := skipBlanks(prose, from)

	switch {
	case strings.HasPrefix(prose[k:], "\n"):
		k++
	case strings.HasPrefix(prose[k:], "\r\n"):
		k += 2
	default:
		return 0, false
	}

	k = skipBlanks(prose, k)
	if k >= len(prose) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(prose[k:])
	if !j.class.IsWide(r) {
		return 0, false
	}
	return k, true
}

// skipBlanks returns the offset of the first byte at or after i that is not
// a space or tab.
func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
