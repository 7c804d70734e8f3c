package store

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/daybook-app/daybook/pkg/core"
)

// ErrSTTUnavailable marks a start attempt with no recognizer wired.
var ErrSTTUnavailable = errors.New("speech recognition unavailable")

// STTTarget names where recognized text is delivered.
type STTTarget string

const (
	STTTargetChat STTTarget = "chat"
	STTTargetNote STTTarget = "note"
)

// STT wraps a speech recognizer with listening state, transcripts, and a
// delivery target.
type STT struct {
	mu  sync.Mutex
	rec core.Recognizer
	log *slog.Logger

	listening  bool
	transcript string
	final      string
	errMsg     string
	target     STTTarget
}

// NewSTT creates an STT store. rec may be nil when no engine is available.
func NewSTT(rec core.Recognizer, log *slog.Logger) *STT {
	return &STT{rec: rec, log: log}
}

// Available reports whether a recognizer is wired.
func (s *STT) Available() bool {
	return s.rec != nil
}

// Start begins continuous recognition for a target. Final results are
// appended to the accumulated transcript and forwarded to onFinal.
func (s *STT) Start(target STTTarget, onFinal func(string)) error {
	if s.rec == nil {
		return ErrSTTUnavailable
	}

	s.mu.Lock()
	s.errMsg = ""
	s.transcript = ""
	s.final = ""
	s.target = target
	s.mu.Unlock()

	err := s.rec.Start(core.RecognizerConfig{
		Continuous:     true,
		InterimResults: true,
		Language:       "en-US",
		OnStart: func() {
			s.mu.Lock()
			s.listening = true
			s.mu.Unlock()
		},
		OnResult: func(r core.TranscriptResult) {
			s.mu.Lock()
			s.transcript = r.Transcript
			if r.IsFinal {
				s.final += r.Transcript + " "
			}
			s.mu.Unlock()
			if r.IsFinal && onFinal != nil {
				onFinal(r.Transcript)
			}
		},
		OnError: func(msg string) {
			s.mu.Lock()
			s.errMsg = msg
			s.listening = false
			s.target = ""
			s.mu.Unlock()
		},
		OnEnd: func() {
			s.mu.Lock()
			s.listening = false
			s.target = ""
			s.mu.Unlock()
		},
	})
	if err != nil {
		s.mu.Lock()
		s.listening = false
		s.target = ""
		s.mu.Unlock()
		if s.log != nil {
			s.log.Error("failed to start speech recognition", slog.Any("error", err))
		}
		return err
	}
	return nil
}

// Stop ends recognition and clears the target.
func (s *STT) Stop() {
	if s.rec != nil {
		s.rec.Stop()
	}
	s.mu.Lock()
	s.listening = false
	s.target = ""
	s.mu.Unlock()
}

// Toggle stops recognition if listening, otherwise starts it for target.
func (s *STT) Toggle(target STTTarget, onFinal func(string)) error {
	if s.rec != nil && s.rec.Listening() {
		s.Stop()
		return nil
	}
	return s.Start(target, onFinal)
}

// Clear resets transcripts and the error state.
func (s *STT) Clear() {
	s.mu.Lock()
	s.transcript = ""
	s.final = ""
	s.errMsg = ""
	s.mu.Unlock()
}

// Listening reports whether recognition is active.
func (s *STT) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Transcript returns the latest (interim or final) transcript.
func (s *STT) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// FinalTranscript returns the accumulated final transcript.
func (s *STT) FinalTranscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

// Err returns the last recognition error, "" when healthy.
func (s *STT) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Target returns where recognized text is being delivered.
func (s *STT) Target() STTTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// ActiveFor is the derived "listening for this target" flag.
func (s *STT) ActiveFor(target STTTarget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening && s.target == target
}
