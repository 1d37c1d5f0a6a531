package submission

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
)

// Config holds form timings and limits
type Config struct {
	SubmitDelay    time.Duration // default 1500ms
	ResetDelay     time.Duration // default 3s
	MaxUploadBytes int64         // default 5 MB
	IdleTimeout    time.Duration // forms untouched this long are swept; 0 disables
}

// Deps are the collaborators of a Service. Only Previews is required.
type Deps struct {
	Previews  PreviewStore
	Journal   Journal
	Scheduler Scheduler
	Observer  Observer
	Now       func() time.Time
}

// Service keeps the mounted forms by id
type Service struct {
	deps        *formDeps
	idleTimeout time.Duration

	mu    sync.RWMutex
	forms map[string]*Form
}

// NewService creates form registry
func NewService(cfg Config, deps Deps) *Service {
	fd := &formDeps{
		previews:    deps.Previews,
		journal:     deps.Journal,
		scheduler:   deps.Scheduler,
		observer:    deps.Observer,
		now:         deps.Now,
		submitDelay: cfg.SubmitDelay,
		resetDelay:  cfg.ResetDelay,
		maxUpload:   cfg.MaxUploadBytes,
	}
	if fd.journal == nil {
		fd.journal = LogJournal{}
	}
	if fd.scheduler == nil {
		fd.scheduler = NewScheduler()
	}
	if fd.observer == nil {
		fd.observer = noopObserver{}
	}
	if fd.now == nil {
		fd.now = time.Now
	}
	if fd.submitDelay <= 0 {
		fd.submitDelay = 1500 * time.Millisecond
	}
	if fd.resetDelay <= 0 {
		fd.resetDelay = 3 * time.Second
	}
	if fd.maxUpload <= 0 {
		fd.maxUpload = storage.MaxImageSize
	}

	return &Service{
		deps:        fd,
		idleTimeout: cfg.IdleTimeout,
		forms:       make(map[string]*Form),
	}
}

// MaxUploadBytes returns the attachment size limit
func (s *Service) MaxUploadBytes() int64 {
	return s.deps.maxUpload
}

// Create mounts a new empty form
func (s *Service) Create(ctx context.Context) Snapshot {
	form := newForm(uuid.New().String(), s.deps)

	s.mu.Lock()
	s.forms[form.id] = form
	s.mu.Unlock()

	s.deps.observer.FormMounted()
	log.Debug().Str("form_id", form.id).Msg("Form mounted")

	return form.Snapshot()
}

// Get returns a mounted form
func (s *Service) Get(id string) (*Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[id]
	if !ok {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// Snapshot returns the current state of a form
func (s *Service) Snapshot(id string) (Snapshot, error) {
	form, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return form.Snapshot(), nil
}

// Update edits form fields
func (s *Service) Update(ctx context.Context, id string, req *UpdateFormRequest) (Snapshot, error) {
	form, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return form.Update(req)
}

// Attach sets the form attachment
func (s *Service) Attach(ctx context.Context, id string, up FileUpload) (Snapshot, error) {
	form, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return form.Attach(ctx, up)
}

// RemoveAttachment clears the form attachment
func (s *Service) RemoveAttachment(ctx context.Context, id string) (Snapshot, error) {
	form, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return form.RemoveAttachment(ctx)
}

// Submit starts the simulated submission
func (s *Service) Submit(ctx context.Context, id string) (Snapshot, error) {
	form, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return form.Submit(ctx)
}

// Discard unmounts a form and releases its preview
func (s *Service) Discard(ctx context.Context, id string) error {
	s.mu.Lock()
	form, ok := s.forms[id]
	delete(s.forms, id)
	s.mu.Unlock()

	if !ok {
		return ErrFormNotFound
	}

	form.discard(ctx)
	s.deps.observer.FormDiscarded()
	log.Debug().Str("form_id", id).Msg("Form discarded")
	return nil
}

// Sweep discards idle forms untouched for longer than the idle timeout
func (s *Service) Sweep(ctx context.Context) int {
	if s.idleTimeout <= 0 {
		return 0
	}

	cutoff := s.deps.now().Add(-s.idleTimeout)

	s.mu.RLock()
	candidates := make(map[string]*Form)
	for id, form := range s.forms {
		if updated, idle := form.idleSince(); idle && updated.Before(cutoff) {
			candidates[id] = form
		}
	}
	s.mu.RUnlock()

	swept := 0
	for id, form := range candidates {
		// the form may have been edited or submitted since the scan
		if !form.discardIfIdle(ctx, cutoff) {
			continue
		}
		s.mu.Lock()
		if s.forms[id] == form {
			delete(s.forms, id)
		}
		s.mu.Unlock()

		s.deps.observer.FormDiscarded()
		swept++
	}
	if swept > 0 {
		log.Info().Int("count", swept).Msg("Swept idle forms")
	}
	return swept
}

// RunSweeper sweeps every interval until ctx is done
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.idleTimeout <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Close discards every form
func (s *Service) Close(ctx context.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		_ = s.Discard(ctx, id)
	}
}
