package hark

import (
	"math"
	"strings"
	"unicode"
)

// Tier is the routing class of an utterance, derived from its acoustic confidence.
type Tier int

const (
	// TierReject drops the utterance without further processing.
	TierReject Tier = iota
	// TierLow accepts the utterance with an acknowledgment first.
	TierLow
	// TierMedium accepts the utterance with an acknowledgment first.
	TierMedium
	// TierHigh accepts the utterance and proceeds straight to planning.
	TierHigh
)

func (x Tier) String() string {
	switch x {
	case TierReject:
		return "reject"
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return "unknown"
}

// NeedsAcknowledgment reports whether the transcript should be echoed back before planning so
// the user can notice a misrecognition.
func (x Tier) NeedsAcknowledgment() bool {
	return x == TierLow || x == TierMedium
}

const (
	DefaultLowConfidence    = 0.25
	DefaultMediumConfidence = 0.40
	DefaultHighConfidence   = 0.60

	// DefaultLogProbFloor is the minimum mean segment log-probability accepted by the acoustic
	// pre-gate. About 50% on the confidence scale.
	DefaultLogProbFloor = -0.7
	// DefaultNoSpeechCeiling is the maximum per-segment no-speech probability accepted.
	DefaultNoSpeechCeiling = 0.6
)

// defaultHallucinations are phrases speech-to-text models emit on silence or noise.
var defaultHallucinations = []string{
	"you",
	"thank you",
	"thanks",
	"subtitles by",
	"amara.org",
	"mbc",
}

// Segment is one recognized stretch of a transcription.
type Segment struct {
	Text         string
	AvgLogProb   float64
	NoSpeechProb float64
}

// Transcription is the raw output of a Transcriber.
type Transcription struct {
	Segments []Segment
}

// Text joins the trimmed segment texts.
func (x *Transcription) Text() string {
	if x == nil {
		return ""
	}
	texts := make([]string, 0, len(x.Segments))
	for _, seg := range x.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// Utterance is one captured stretch of speech with its transcript and acoustic confidence.
// Transcript is empty when the acoustic pre-gate rejected the audio.
type Utterance struct {
	ID         string
	Audio      *Audio
	Transcript string
	Confidence float64
}

// Decision is the routing result of the gate.
type Decision struct {
	Tier       Tier
	Transcript string
	Confidence float64

	// Noise is set on rejection with non-zero confidence: something was heard but not trusted.
	Noise bool
}

// Accepted reports whether the utterance proceeds to planning.
func (x Decision) Accepted() bool {
	return x.Tier != TierReject
}

// ConfidenceGate routes utterances by acoustic confidence. It is stateless and safe to share.
type ConfidenceGate struct {
	low, medium, high float64

	logProbFloor    float64
	noSpeechCeiling float64
	hallucinations  map[string]struct{}
}

// GateOption configures a ConfidenceGate.
type GateOption func(*ConfidenceGate)

// WithThresholds sets the three ordered thresholds. Values must satisfy low < medium < high.
func WithThresholds(low, medium, high float64) GateOption {
	return func(g *ConfidenceGate) {
		g.low, g.medium, g.high = low, medium, high
	}
}

// WithAcousticLimits sets the log-probability floor and no-speech ceiling of the pre-gate.
func WithAcousticLimits(logProbFloor, noSpeechCeiling float64) GateOption {
	return func(g *ConfidenceGate) {
		g.logProbFloor = logProbFloor
		g.noSpeechCeiling = noSpeechCeiling
	}
}

// WithHallucinations replaces the set of phrases that are always rejected.
func WithHallucinations(phrases ...string) GateOption {
	return func(g *ConfidenceGate) {
		g.hallucinations = make(map[string]struct{}, len(phrases))
		for _, p := range phrases {
			g.hallucinations[normalizeTranscript(p)] = struct{}{}
		}
	}
}

// NewConfidenceGate creates a gate with the default thresholds.
func NewConfidenceGate(opts ...GateOption) *ConfidenceGate {
	g := &ConfidenceGate{
		low:             DefaultLowConfidence,
		medium:          DefaultMediumConfidence,
		high:            DefaultHighConfidence,
		logProbFloor:    DefaultLogProbFloor,
		noSpeechCeiling: DefaultNoSpeechCeiling,
	}
	WithHallucinations(defaultHallucinations...)(g)

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Score applies the acoustic pre-gate to a transcription and returns the accepted transcript
// and its confidence. The transcript is empty when the audio is rejected regardless of what the
// lexical content says.
//
// Confidence is a linear remap of the mean log-probability into [0,1]. It is a heuristic, not a
// calibrated probability.
func (x *ConfidenceGate) Score(t *Transcription) (string, float64) {
	text := t.Text()

	if x.IsHallucination(text) {
		return "", 0
	}
	if text == "" || len(t.Segments) == 0 {
		return "", 0
	}

	var sumLogProb float64
	maxNoSpeech := math.Inf(-1)
	for _, seg := range t.Segments {
		sumLogProb += seg.AvgLogProb
		maxNoSpeech = math.Max(maxNoSpeech, seg.NoSpeechProb)
	}
	avgLogProb := sumLogProb / float64(len(t.Segments))

	confidence := math.Max(0, math.Min(1, avgLogProb+1.0))

	if avgLogProb < x.logProbFloor || maxNoSpeech > x.noSpeechCeiling {
		return "", confidence
	}

	return text, confidence
}

// Classify routes a transcript by its confidence.
func (x *ConfidenceGate) Classify(transcript string, confidence float64) Decision {
	d := Decision{
		Transcript: transcript,
		Confidence: confidence,
	}

	switch {
	case strings.TrimSpace(transcript) == "", confidence < x.low:
		d.Tier = TierReject
		d.Noise = confidence > 0
	case x.IsHallucination(transcript):
		d.Tier = TierReject
	case confidence < x.medium:
		d.Tier = TierLow
	case confidence < x.high:
		d.Tier = TierMedium
	default:
		d.Tier = TierHigh
	}

	return d
}

// Evaluate runs the pre-gate and the classification in one step.
func (x *ConfidenceGate) Evaluate(t *Transcription) Decision {
	text, confidence := x.Score(t)
	return x.Classify(text, confidence)
}

// IsHallucination reports whether the normalized transcript is a known silence artifact.
func (x *ConfidenceGate) IsHallucination(transcript string) bool {
	_, ok := x.hallucinations[normalizeTranscript(transcript)]
	return ok
}

func normalizeTranscript(s string) string {
	return strings.TrimFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}
