package types

// Transcript is the whisper.cpp JSON output shape.
type Transcript struct {
	Segments []Segment `json:"segments"`
}

// Segment is one timed unit of recognized speech. Times are seconds from the
// start of the audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
