package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
	"github.com/libraryhall/hallbook-api/internal/pkg/validator"
)

const subscriberBuffer = 16

type formDeps struct {
	previews    PreviewStore
	journal     Journal
	scheduler   Scheduler
	observer    Observer
	now         func() time.Time
	submitDelay time.Duration
	resetDelay  time.Duration
	maxUpload   int64
}

// Form is one mounted booking form.
// Timer callbacks and requests are serialized by mu.
type Form struct {
	id   string
	deps *formDeps

	mu         sync.Mutex
	status     Status
	data       FormData
	attachment *Attachment
	discarded  bool
	createdAt  time.Time
	updatedAt  time.Time
	subs       map[chan Snapshot]struct{}
}

func newForm(id string, deps *formDeps) *Form {
	now := deps.now()
	return &Form{
		id:        id,
		deps:      deps,
		status:    StatusIdle,
		createdAt: now,
		updatedAt: now,
		subs:      make(map[chan Snapshot]struct{}),
	}
}

// ID returns the form id
func (f *Form) ID() string {
	return f.id
}

// Snapshot returns a copy of the current state
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Update changes the given fields. Edits are allowed in every status.
func (f *Form) Update(req *UpdateFormRequest) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		return Snapshot{}, ErrFormNotFound
	}

	req.apply(&f.data)
	f.changedLocked()
	return f.snapshotLocked(), nil
}

// Attach accepts up as the student id card. A rejected file leaves the current attachment as it was.
// The new preview is stored without holding the lock, then swapped in; the old one is released after.
func (f *Form) Attach(ctx context.Context, up FileUpload) (Snapshot, error) {
	if err := storage.AcceptImage(up.ContentType, up.Size, f.deps.maxUpload); err != nil {
		f.deps.observer.AttachmentRejectedFor(rejectReason(err))
		return Snapshot{}, err
	}

	f.mu.Lock()
	discarded := f.discarded
	f.mu.Unlock()
	if discarded {
		return Snapshot{}, ErrFormNotFound
	}

	preview, err := f.deps.previews.Acquire(ctx, f.id, up)
	if err != nil {
		return Snapshot{}, err
	}
	f.deps.observer.PreviewAcquired()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		f.releaseLocked(ctx, preview)
		return Snapshot{}, ErrFormNotFound
	}

	if f.attachment != nil {
		f.releaseLocked(ctx, f.attachment.Preview)
	}
	f.attachment = &Attachment{
		FileName:    up.FileName,
		ContentType: storage.NormalizeMimeType(up.ContentType),
		Size:        up.Size,
		Preview:     preview,
	}

	f.changedLocked()
	return f.snapshotLocked(), nil
}

// RemoveAttachment releases the preview and clears the attachment
func (f *Form) RemoveAttachment(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		return Snapshot{}, ErrFormNotFound
	}

	if f.attachment != nil {
		f.releaseLocked(ctx, f.attachment.Preview)
		f.attachment = nil
		f.changedLocked()
	}
	return f.snapshotLocked(), nil
}

// Submit validates the form and starts the simulated submission.
// It completes after the submit delay and resets after the reset delay; it cannot be cancelled.
func (f *Form) Submit(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		return Snapshot{}, ErrFormNotFound
	}
	if f.status != StatusIdle {
		return Snapshot{}, ErrSubmissionInProgress
	}
	if fields := f.validateLocked(); len(fields) > 0 {
		return Snapshot{}, &ValidationError{Fields: fields}
	}

	entry := Entry{
		FormID:      f.id,
		RequestID:   logger.RequestID(ctx),
		Data:        f.data,
		Attachment:  copyAttachment(f.attachment),
		SubmittedAt: f.deps.now(),
	}

	// Timers outlive the request; keep its logger only
	bg := logger.WithContext(context.Background(), logger.FromContext(ctx))

	f.status = StatusSubmitting
	f.changedLocked()
	f.deps.scheduler.AfterFunc(f.deps.submitDelay, func() { f.complete(bg, entry) })

	return f.snapshotLocked(), nil
}

func (f *Form) complete(ctx context.Context, entry Entry) {
	f.mu.Lock()
	if f.discarded {
		f.mu.Unlock()
		return
	}
	entry.CompletedAt = f.deps.now()
	f.status = StatusSuccess
	f.changedLocked()
	f.deps.scheduler.AfterFunc(f.deps.resetDelay, func() { f.reset(ctx) })
	f.mu.Unlock()

	if err := f.deps.journal.Record(ctx, entry); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("form_id", f.id).Msg("Failed to journal submission")
	}
	f.deps.observer.SubmissionCompleted(string(StatusSuccess))
}

func (f *Form) reset(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		return
	}

	if f.attachment != nil {
		f.releaseLocked(ctx, f.attachment.Preview)
		f.attachment = nil
	}
	f.data = FormData{}
	f.status = StatusIdle
	f.changedLocked()
}

// discard releases everything the form holds and closes subscriptions.
// Pending timers become no-ops.
func (f *Form) discard(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discardLocked(ctx)
}

// discardIfIdle discards the form only if it is idle and unchanged since cutoff.
// Both are checked under the same lock that guards submission.
func (f *Form) discardIfIdle(ctx context.Context, cutoff time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded || f.status != StatusIdle || !f.updatedAt.Before(cutoff) {
		return false
	}
	f.discardLocked(ctx)
	return true
}

func (f *Form) discardLocked(ctx context.Context) {
	if f.discarded {
		return
	}
	f.discarded = true

	if f.attachment != nil {
		f.releaseLocked(ctx, f.attachment.Preview)
		f.attachment = nil
	}
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
}

// Subscribe streams snapshots, starting with the current one.
// The channel is closed by cancel or when the form is discarded.
func (f *Form) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.discarded {
		close(ch)
		return ch, func() {}
	}

	f.subs[ch] = struct{}{}
	ch <- f.snapshotLocked()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (f *Form) validateLocked() map[string]string {
	fields := validator.Validate(f.data)
	if fields == nil {
		fields = make(map[string]string)
	}

	// The date input's min is today's date
	if _, bad := fields["booking_date"]; !bad {
		today := f.deps.now().UTC().Format(validator.DateLayout)
		if f.data.BookingDate < today {
			fields["booking_date"] = "Date cannot be in the past"
		}
	}

	if f.attachment == nil {
		fields["student_id_card"] = "This field is required"
	}
	return fields
}

func (f *Form) releaseLocked(ctx context.Context, p *Preview) {
	if p == nil {
		return
	}
	if err := f.deps.previews.Release(ctx, p); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("form_id", f.id).Str("key", p.Key).Msg("Failed to release preview")
	}
	f.deps.observer.PreviewReleased()
}

func (f *Form) changedLocked() {
	f.updatedAt = f.deps.now()

	snap := f.snapshotLocked()
	for ch := range f.subs {
		select {
		case ch <- snap:
		default:
			// slow subscriber: drop its oldest snapshot so the latest one is kept
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         f.id,
		Status:     f.status,
		Data:       f.data,
		Attachment: copyAttachment(f.attachment),
		CreatedAt:  f.createdAt,
		UpdatedAt:  f.updatedAt,
	}
}

func copyAttachment(a *Attachment) *Attachment {
	if a == nil {
		return nil
	}
	c := *a
	if a.Preview != nil {
		p := *a.Preview
		c.Preview = &p
	}
	return &c
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, storage.ErrInvalidMimeType):
		return "type"
	case errors.Is(err, storage.ErrFileTooLarge):
		return "size"
	default:
		return "other"
	}
}
