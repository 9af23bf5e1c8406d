package asr

import "encoding/json"

// Response is the raw Deepgram transcription response. Every nested field is
// optional; consumers must tolerate any of them being absent.
type Response struct {
	Results *Results `json:"results"`
}

// Results holds per-channel transcription output
type Results struct {
	Channels []Channel `json:"channels"`
}

// Channel is one audio channel's output
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one transcription hypothesis. It may carry two parallel
// speaker-tagged representations: word-level tags and paragraph/sentence
// grouping.
type Alternative struct {
	Transcript string          `json:"transcript"`
	Confidence float64         `json:"confidence"`
	Words      []Word          `json:"words"`
	Paragraphs *ParagraphGroup `json:"paragraphs"`
}

// ParagraphGroup wraps the paragraph-level representation
type ParagraphGroup struct {
	Transcript string      `json:"transcript"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph groups sentences attributed to one speaker
type Paragraph struct {
	Speaker   *int       `json:"speaker"`
	Start     *float64   `json:"start"`
	End       *float64   `json:"end"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is one sentence with its own timestamps and speaker tag
type Sentence struct {
	Text    string   `json:"text"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Speaker *int     `json:"speaker"`
}

// Word is one word with timestamps and speaker tag. PunctuatedWord is set
// when smart formatting is enabled and is preferred for display.
type Word struct {
	Word           string   `json:"word"`
	PunctuatedWord string   `json:"punctuated_word"`
	Start          *float64 `json:"start"`
	End            *float64 `json:"end"`
	Confidence     float64  `json:"confidence"`
	Speaker        *int     `json:"speaker"`
}

// Text returns the display form of the word
func (w Word) Text() string {
	if w.PunctuatedWord != "" {
		return w.PunctuatedWord
	}
	return w.Word
}

// Decode parses a raw Deepgram response body
func Decode(raw []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Alternative returns the first alternative of the first channel, or nil when
// the response carries no transcription results.
func (r *Response) Alternative() *Alternative {
	if r == nil || r.Results == nil || len(r.Results.Channels) == 0 {
		return nil
	}
	ch := r.Results.Channels[0]
	if len(ch.Alternatives) == 0 {
		return nil
	}
	return &ch.Alternatives[0]
}
