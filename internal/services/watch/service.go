package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"dq-report-service/internal/backend"
	"dq-report-service/internal/models"
)

var (
	ErrAlreadyWatching = errors.New("upload is already being watched")
	ErrNotWatched      = errors.New("upload is not being watched")
)

type StatusSource interface {
	GetUploadStatus(ctx context.Context, uploadID string) (backend.UploadStatus, error)
	GetDataQualityCheck(ctx context.Context, uploadID string) (*models.DataQualityCheck, error)
}

type Store interface {
	Save(w *models.UploadWatch) error
	Get(uploadID string) (*models.UploadWatch, error)
	ListPending() ([]models.UploadWatch, error)
}

// CompleteFunc runs once when an upload's checks finish.
type CompleteFunc func(ctx context.Context, meta models.UploadMeta, result *models.DataQualityCheck)

type Options struct {
	PollInterval time.Duration
	MaxWait      time.Duration
	OnComplete   CompleteFunc
}

// Service polls the portal API for uploads whose checks are still running.
// Every watch is cancelled explicitly through Stop or Shutdown.
type Service struct {
	base     context.Context
	shutdown context.CancelFunc
	source   StatusSource
	store    Store
	opts     Options
	now      func() time.Time

	progress sync.Map // uploadID -> models.UploadWatch
	cancels  sync.Map // uploadID -> *handle
	wg       sync.WaitGroup
}

type handle struct {
	cancel context.CancelFunc
}

func NewService(base context.Context, source StatusSource, store Store, opts Options) *Service {
	ctx, cancel := context.WithCancel(base)
	return &Service{
		base:     ctx,
		shutdown: cancel,
		source:   source,
		store:    store,
		opts:     opts,
		now:      time.Now,
	}
}

// Start begins polling uploadID in the background.
func (s *Service) Start(uploadID string) (models.UploadWatch, error) {
	if uploadID == "" {
		return models.UploadWatch{}, fmt.Errorf("upload id is required")
	}
	return s.start(models.UploadWatch{UploadID: uploadID, Status: models.StatusPending, StartedAt: s.now()})
}

func (s *Service) start(w models.UploadWatch) (models.UploadWatch, error) {
	ctx, cancel := context.WithCancel(s.base)
	h := &handle{cancel: cancel}
	if _, loaded := s.cancels.LoadOrStore(w.UploadID, h); loaded {
		cancel()
		return models.UploadWatch{}, ErrAlreadyWatching
	}

	w.UpdatedAt = s.now()
	s.record(w)

	s.wg.Add(1)
	go s.run(ctx, h, w)
	return w, nil
}

// Resume restarts every watch the store still lists as pending.
func (s *Service) Resume() (int, error) {
	pending, err := s.store.ListPending()
	if err != nil {
		return 0, fmt.Errorf("list pending watches: %w", err)
	}
	n := 0
	for _, w := range pending {
		if _, err := s.start(w); err == nil {
			n++
		}
	}
	return n, nil
}

// Stop cancels the watch for uploadID. Its last known state is kept.
func (s *Service) Stop(uploadID string) error {
	val, ok := s.cancels.LoadAndDelete(uploadID)
	if !ok {
		return ErrNotWatched
	}
	val.(*handle).cancel()
	return nil
}

// Get returns the last recorded state for uploadID. Watches finished before
// a restart are only in the store.
func (s *Service) Get(uploadID string) (models.UploadWatch, bool) {
	if val, ok := s.progress.Load(uploadID); ok {
		return val.(models.UploadWatch), true
	}
	w, err := s.store.Get(uploadID)
	if err != nil || w == nil {
		return models.UploadWatch{}, false
	}
	return *w, true
}

func (s *Service) Active(uploadID string) bool {
	_, ok := s.cancels.Load(uploadID)
	return ok
}

// Shutdown cancels every watch and waits for the pollers to return.
func (s *Service) Shutdown() {
	s.shutdown()
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context, h *handle, w models.UploadWatch) {
	defer s.wg.Done()
	defer h.cancel()
	defer s.cancels.CompareAndDelete(w.UploadID, h)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		var status backend.UploadStatus
		w, status = s.poll(ctx, w)
		if ctx.Err() != nil {
			return
		}
		s.record(w)

		if w.Status.Terminal() {
			log.Printf("watch %s: %s after %d polls", w.UploadID, w.Status, w.Attempts)
			if w.Status == models.StatusCompleted {
				s.complete(ctx, w, status)
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) poll(ctx context.Context, w models.UploadWatch) (models.UploadWatch, backend.UploadStatus) {
	w.Attempts++
	w.UpdatedAt = s.now()

	status, err := s.source.GetUploadStatus(ctx, w.UploadID)
	reported := models.StatusPending
	if err != nil {
		w.LastError = err.Error()
		log.Printf("watch %s: poll %d failed: %v", w.UploadID, w.Attempts, err)
	} else {
		w.LastError = ""
		var known bool
		reported, known = ParseReported(status.DQStatus)
		if !known {
			log.Printf("watch %s: unrecognised dq status %q, still pending", w.UploadID, status.DQStatus)
		}
	}

	w.Status = Next(w.Status, reported, s.now().Sub(w.StartedAt), s.opts.MaxWait)
	if w.Status.Terminal() {
		done := s.now()
		w.CompletedAt = &done
	}
	return w, status
}

func (s *Service) complete(ctx context.Context, w models.UploadWatch, status backend.UploadStatus) {
	if s.opts.OnComplete == nil {
		return
	}
	result, err := s.source.GetDataQualityCheck(ctx, w.UploadID)
	if err != nil {
		w.LastError = err.Error()
		s.record(w)
		log.Printf("watch %s: fetch dq result: %v", w.UploadID, err)
		return
	}

	meta := status.Meta()
	meta.UploadID = w.UploadID
	if w.CompletedAt != nil {
		meta.CheckDate = w.CompletedAt.UTC().Format(time.RFC3339)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("watch %s: completion hook panicked: %v", w.UploadID, r)
		}
	}()
	s.opts.OnComplete(ctx, meta, result)
}

func (s *Service) record(w models.UploadWatch) {
	s.progress.Store(w.UploadID, w)
	if err := s.store.Save(&w); err != nil {
		log.Printf("watch %s: persist state: %v", w.UploadID, err)
	}
}
