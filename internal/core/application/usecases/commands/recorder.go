package commands

// Recorder receives command telemetry. Outcome is an errs.Kind label.
type Recorder interface {
	CommandCompleted(name, outcome string)
	CommandRetried(name string)
	NotificationFailed(eventType string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) CommandCompleted(string, string) {}

func (NopRecorder) CommandRetried(string) {}

func (NopRecorder) NotificationFailed(string) {}
