package metrics

const (
	Namespace          = "tokenvote"
	SequencerSubsystem = "sequencer"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
