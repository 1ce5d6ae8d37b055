package sentiment

import (
	"regexp"
	"sort"

	"github.com/mshrynzw/auriary/pkg/model"
)

type wordMatch struct {
	start int
	end   int
	word  model.HighlightedWord
}

// Highlight splits text into plain and highlighted segments for rendering.
// Every occurrence of every flagged word is located case-insensitively in the
// text itself; the Position an analysis engine reported is ignored since the
// stored text may have drifted from what the engine saw. Overlapping matches
// are resolved left to right: a match survives only if it starts at or after
// the end of the previously kept one.
//
// Concatenating the Text of the returned segments reproduces text exactly.
func Highlight(text string, words []model.HighlightedWord) []model.TextSegment {
	if text == "" {
		return []model.TextSegment{}
	}
	if len(words) == 0 {
		return []model.TextSegment{{Text: text}}
	}

	matches := make([]wordMatch, 0, len(words))
	for _, w := range words {
		if w.Word == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(w.Word))
		if err != nil {
			// one bad entry must not block the rest
			continue
		}
		word := w
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, wordMatch{start: loc[0], end: loc[1], word: word})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	kept := make([]wordMatch, 0, len(matches))
	for _, m := range matches {
		if len(kept) == 0 || m.start >= kept[len(kept)-1].end {
			kept = append(kept, m)
		}
	}

	segments := make([]model.TextSegment, 0, 2*len(kept)+1)
	last := 0
	for _, m := range kept {
		if m.start > last {
			segments = append(segments, model.TextSegment{Text: text[last:m.start]})
		}
		hl := m.word
		segments = append(segments, model.TextSegment{Text: text[m.start:m.end], Highlight: &hl})
		last = m.end
	}
	if last < len(text) {
		segments = append(segments, model.TextSegment{Text: text[last:]})
	}
	return segments
}
