package core

// TranscriptResult is one recognition result, interim or final.
type TranscriptResult struct {
	Transcript string
	IsFinal    bool
}

// RecognizerConfig configures a recognition session. Callbacks are invoked
// from the recognizer's own goroutine; nil callbacks are skipped.
type RecognizerConfig struct {
	Continuous     bool
	InterimResults bool
	Language       string

	OnStart  func()
	OnResult func(TranscriptResult)
	OnError  func(errMsg string)
	OnEnd    func()
}

// Recognizer is the speech-recognition boundary. The engine itself is an
// external collaborator; only this contract is part of the core.
type Recognizer interface {
	Start(cfg RecognizerConfig) error
	Stop()
	Listening() bool
}
