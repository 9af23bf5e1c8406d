package diarization

import (
	"errors"
	"testing"
)

func TestExtract_CoarseOnlyMirrorsSentences(t *testing.T) {
	raw := []byte(`{
		"results": {"channels": [{"alternatives": [{
			"transcript": "Hello there. General Kenobi.",
			"confidence": 0.97,
			"paragraphs": {"paragraphs": [
				{"sentences": [
					{"text": "Hello there.", "start": 0.5, "end": 1.2, "speaker": 0},
					{"text": "General Kenobi.", "start": 1.8, "end": 2.9, "speaker": 1}
				]}
			]}
		}]}]}
	}`)

	ext, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Transcript != "Hello there. General Kenobi." {
		t.Errorf("unexpected transcript %q", ext.Transcript)
	}
	if ext.Confidence != 0.97 {
		t.Errorf("unexpected confidence %v", ext.Confidence)
	}
	if len(ext.Speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(ext.Speakers))
	}
	if len(ext.Speakers[0]) != 1 || ext.Speakers[0][0].Text != "Hello there." {
		t.Errorf("speaker 0 segments wrong: %+v", ext.Speakers[0])
	}
	if seg := ext.Speakers[1][0]; seg.Start == nil || *seg.Start != 1.8 || seg.End == nil || *seg.End != 2.9 {
		t.Errorf("speaker 1 timestamps not preserved: %+v", seg)
	}
}

func TestExtract_FineWinsWhenMoreSpeakers(t *testing.T) {
	// Coarse path collapsed rapid dialogue into a single speaker; word tags
	// report two. The fine path must win and runs must merge per speaker.
	raw := []byte(`{
		"results": {"channels": [{"alternatives": [{
			"transcript": "I attack. Roll for it. Natural twenty.",
			"confidence": 0.9,
			"paragraphs": {"paragraphs": [
				{"sentences": [
					{"text": "I attack. Roll for it. Natural twenty.", "start": 0.0, "end": 4.0, "speaker": 0}
				]}
			]},
			"words": [
				{"word": "i", "punctuated_word": "I", "start": 0.0, "end": 0.3, "speaker": 0},
				{"word": "attack", "punctuated_word": "attack.", "start": 0.3, "end": 0.8, "speaker": 0},
				{"word": "roll", "punctuated_word": "Roll", "start": 1.0, "end": 1.3, "speaker": 1},
				{"word": "for", "start": 1.3, "end": 1.5, "speaker": 1},
				{"word": "it", "punctuated_word": "it.", "start": 1.5, "end": 1.7, "speaker": 1},
				{"word": "natural", "punctuated_word": "Natural", "start": 2.2, "end": 2.7, "speaker": 0},
				{"word": "twenty", "punctuated_word": "twenty.", "start": 2.7, "end": 3.1, "speaker": 0}
			]
		}]}]}
	}`)

	ext, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ext.Speakers) != 2 {
		t.Fatalf("expected fine path with 2 speakers, got %d", len(ext.Speakers))
	}
	if got := len(ext.Speakers[0]); got != 2 {
		t.Fatalf("expected 2 runs for speaker 0, got %d", got)
	}
	if ext.Speakers[0][0].Text != "I attack." {
		t.Errorf("first run text = %q", ext.Speakers[0][0].Text)
	}
	if ext.Speakers[1][0].Text != "Roll for it." {
		t.Errorf("speaker 1 run text = %q", ext.Speakers[1][0].Text)
	}
	run := ext.Speakers[1][0]
	if run.Start == nil || *run.Start != 1.0 || run.End == nil || *run.End != 1.7 {
		t.Errorf("run timestamps = %+v", run)
	}
}

func TestExtract_CoarseWinsOnTie(t *testing.T) {
	// Equal distinct speaker counts: the sentence grouping is kept.
	raw := []byte(`{
		"results": {"channels": [{"alternatives": [{
			"transcript": "One sentence.",
			"paragraphs": {"paragraphs": [
				{"sentences": [{"text": "One sentence.", "speaker": 0}]}
			]},
			"words": [
				{"word": "one", "speaker": 0},
				{"word": "sentence", "speaker": 0}
			]
		}]}]}
	}`)

	ext, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ext.Speakers[0]) != 1 || ext.Speakers[0][0].Text != "One sentence." {
		t.Errorf("expected single sentence segment, got %+v", ext.Speakers[0])
	}
}

func TestExtract_MissingSpeakerDefaultsToZero(t *testing.T) {
	raw := []byte(`{
		"results": {"channels": [{"alternatives": [{
			"paragraphs": {"paragraphs": [
				{"sentences": [{"text": "Untagged speech."}]}
			]}
		}]}]}
	}`)

	ext, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	segs, ok := ext.Speakers[0]
	if !ok || len(segs) != 1 {
		t.Fatalf("expected segment under speaker 0, got %+v", ext.Speakers)
	}
	if segs[0].Start != nil || segs[0].End != nil {
		t.Errorf("missing timestamps should stay nil, got %+v", segs[0])
	}
}

func TestExtract_DegradesOnMissingOptionalFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"no channels", `{"results": {"channels": []}}`},
		{"no alternatives", `{"results": {"channels": [{"alternatives": []}]}}`},
		{"no representations", `{"results": {"channels": [{"alternatives": [{"transcript": "hi"}]}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, err := Extract([]byte(tc.raw))
			if err != nil {
				t.Fatalf("expected graceful degradation, got %v", err)
			}
			if len(ext.Speakers) != 0 {
				t.Errorf("expected no speakers, got %+v", ext.Speakers)
			}
		})
	}
}

func TestExtract_MalformedPayloadFails(t *testing.T) {
	_, err := Extract([]byte(`{"results": `))
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
}
