package submission

// Observer is notified of form lifecycle events. *metrics.Metrics implements it.
type Observer interface {
	SubmissionCompleted(outcome string)
	AttachmentRejectedFor(reason string)
	PreviewAcquired()
	PreviewReleased()
	FormMounted()
	FormDiscarded()
}

type noopObserver struct{}

func (noopObserver) SubmissionCompleted(string)   {}
func (noopObserver) AttachmentRejectedFor(string) {}
func (noopObserver) PreviewAcquired()             {}
func (noopObserver) PreviewReleased()             {}
func (noopObserver) FormMounted()                 {}
func (noopObserver) FormDiscarded()               {}
