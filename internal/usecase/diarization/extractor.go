// Package diarization normalizes raw speaker-diarized ASR output and resolves
// speaker identity across the recordings of a game session. Everything in this
// package is a pure function over in-memory snapshots; persistence and the ASR
// network call live with the callers.
package diarization

import (
	"sort"
	"strings"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/pkg/asr"
)

// Extraction is the normalized output of one recording's ASR response:
// the per-speaker segment timeline plus the transcript-level fields.
type Extraction struct {
	Transcript string
	Confidence float64
	Speakers   map[int][]entities.SpeechSegment
}

// SpeakerIndexes returns the extracted speaker indexes in ascending order
func (e *Extraction) SpeakerIndexes() []int {
	idx := make([]int, 0, len(e.Speakers))
	for i := range e.Speakers {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Extract converts one raw ASR response into the best available per-speaker
// segment breakdown. Deepgram returns two parallel speaker-tagged
// representations: sentences grouped into paragraphs, and individual words.
// The word-level tags are sometimes more discriminating (rapid back-and-forth
// dialogue collapsed into one paragraph upstream), so whichever representation
// reports strictly more distinct speakers wins.
//
// Extract fails only when raw cannot be decoded at all; any missing nested
// field degrades to an empty or default value.
func Extract(raw []byte) (*Extraction, error) {
	resp, err := asr.Decode(raw)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	ext := &Extraction{Speakers: make(map[int][]entities.SpeechSegment)}

	alt := resp.Alternative()
	if alt == nil {
		return ext, nil
	}
	ext.Transcript = alt.Transcript
	ext.Confidence = alt.Confidence

	coarse := sentenceSpeakerSet(alt)
	fine := wordSpeakerSet(alt.Words)

	if len(fine) > len(coarse) && len(alt.Words) > 0 {
		collectWordRuns(alt.Words, ext.Speakers)
	} else {
		collectSentences(alt, ext.Speakers)
	}

	return ext, nil
}

// speakerOrDefault resolves a missing speaker tag to index 0
func speakerOrDefault(speaker *int) int {
	if speaker == nil {
		return 0
	}
	return *speaker
}

func sentenceSpeakerSet(alt *asr.Alternative) map[int]struct{} {
	set := make(map[int]struct{})
	if alt.Paragraphs == nil {
		return set
	}
	for _, p := range alt.Paragraphs.Paragraphs {
		for _, s := range p.Sentences {
			set[speakerOrDefault(s.Speaker)] = struct{}{}
		}
	}
	return set
}

func wordSpeakerSet(words []asr.Word) map[int]struct{} {
	set := make(map[int]struct{})
	for _, w := range words {
		set[speakerOrDefault(w.Speaker)] = struct{}{}
	}
	return set
}

// collectSentences emits one segment per sentence, text and timestamps verbatim
func collectSentences(alt *asr.Alternative, out map[int][]entities.SpeechSegment) {
	if alt.Paragraphs == nil {
		return
	}
	for _, p := range alt.Paragraphs.Paragraphs {
		for _, s := range p.Sentences {
			idx := speakerOrDefault(s.Speaker)
			out[idx] = append(out[idx], entities.SpeechSegment{
				Text:  s.Text,
				Start: copyTime(s.Start),
				End:   copyTime(s.End),
			})
		}
	}
}

// collectWordRuns merges consecutive words sharing a speaker tag into one
// segment per unbroken run
func collectWordRuns(words []asr.Word, out map[int][]entities.SpeechSegment) {
	var (
		runWords   []string
		runSpeaker int
		runStart   *float64
		runEnd     *float64
	)

	flush := func() {
		if len(runWords) == 0 {
			return
		}
		out[runSpeaker] = append(out[runSpeaker], entities.SpeechSegment{
			Text:  strings.TrimSpace(strings.Join(runWords, " ")),
			Start: runStart,
			End:   runEnd,
		})
		runWords = nil
	}

	for _, w := range words {
		idx := speakerOrDefault(w.Speaker)
		if len(runWords) == 0 || idx != runSpeaker {
			flush()
			runSpeaker = idx
			runStart = copyTime(w.Start)
			runEnd = nil
		}
		runWords = append(runWords, w.Text())
		if w.End != nil {
			runEnd = copyTime(w.End)
		}
	}
	flush()
}

// copyTime clones an optional timestamp so extracted segments never alias the
// decoded response
func copyTime(t *float64) *float64 {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
