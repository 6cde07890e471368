package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shortlink/pkg/core/domain"
	"shortlink/pkg/ports"
	"shortlink/pkg/store"
)

const (
	// DefaultValidity applies when the caller supplies no validity period.
	DefaultValidity = 30 * time.Minute

	// maxGenerateAttempts bounds the generate-until-unique loop so a
	// saturated index cannot spin forever.
	maxGenerateAttempts = 1000
)

// Engine is the short-URL management engine: it allocates codes, validates
// inputs, tracks expiry and clicks, and writes through to persistence after
// every mutation.
//
// All operations are serialized by a mutex. The sweep runs on its own
// goroutine when scheduled, so the engine cannot rely on a single caller.
type Engine struct {
	mu              sync.Mutex
	store           *store.EntryStore
	persister       ports.Persister
	gen             ports.CodeGenerator
	clock           domain.Clock
	log             *slog.Logger
	defaultValidity time.Duration
}

// NewEngine creates an engine over the given collaborators. A zero
// defaultValidity selects DefaultValidity.
func NewEngine(st *store.EntryStore, persister ports.Persister, gen ports.CodeGenerator, clock domain.Clock, logger *slog.Logger, defaultValidity time.Duration) *Engine {
	if defaultValidity <= 0 {
		defaultValidity = DefaultValidity
	}
	return &Engine{
		store:           st,
		persister:       persister,
		gen:             gen,
		clock:           clock,
		log:             logger,
		defaultValidity: defaultValidity,
	}
}

// Create allocates a new short link for longURL. customCode, when non-empty,
// is used instead of a generated code and echoed on the entry. validity
// defaults to the engine's default when zero.
func (e *Engine) Create(ctx context.Context, longURL, customCode string, validity time.Duration) (*domain.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateLongURL(longURL); err != nil {
		e.log.Warn("create rejected", "action", "create", "url", longURL, "error", err)
		return nil, err
	}

	code := customCode
	if code != "" {
		if err := validateCodeSyntax(code); err != nil {
			e.log.Warn("create rejected", "action", "create", "code", code, "error", err)
			return nil, err
		}
		if e.store.CodeInUse(code) {
			e.log.Warn("create rejected", "action", "create", "code", code, "error", domain.ErrCodeTaken)
			return nil, domain.ErrCodeTaken
		}
	} else {
		var err error
		if code, err = e.nextFreeCode(); err != nil {
			e.log.Error("create failed", "action", "create", "error", err)
			return nil, err
		}
	}

	if validity <= 0 {
		validity = e.defaultValidity
	}

	now := e.clock.Now()
	entry := &domain.Entry{
		ID:              uuid.NewString(),
		LongURL:         longURL,
		ShortCode:       code,
		CreatedAt:       now,
		ExpiresAt:       now.Add(validity),
		Clicks:          0,
		IsValid:         true,
		CustomShortCode: customCode,
	}

	if err := e.store.Insert(entry); err != nil {
		// Unreachable given the checks above; would mean the two indexes
		// disagree.
		e.log.Error("create failed", "action", "create", "code", code, "error", err)
		return nil, err
	}
	e.persistLocked(ctx)

	e.log.Info("short link created", "action", "create",
		"id", entry.ID, "code", entry.ShortCode, "expires_at", entry.ExpiresAt)
	return entry.Clone(), nil
}

// nextFreeCode draws random codes until one is unused, bounded by
// maxGenerateAttempts.
func (e *Engine) nextFreeCode() (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code := e.gen.Generate()
		if !e.store.CodeInUse(code) {
			return code, nil
		}
	}
	return "", domain.ErrGenerationExhausted
}

// Resolve returns the entry for a code. An unknown code yields
// domain.ErrNotFound; a code past its expiry is soft-invalidated in place
// (it keeps occupying its slot until the next sweep) and yields
// domain.ErrExpired. Resolve does not count a click.
func (e *Engine) Resolve(ctx context.Context, code string) (*domain.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.resolveLocked(ctx, code)
	if err != nil {
		return nil, err
	}
	e.log.Info("short link resolved", "action", "resolve", "code", code, "clicks", entry.Clicks)
	return entry.Clone(), nil
}

// resolveLocked returns the live stored entry for a code, applying lazy
// soft-expiry. Callers hold the mutex.
func (e *Engine) resolveLocked(ctx context.Context, code string) (*domain.Entry, error) {
	entry, ok := e.store.GetByCode(code)
	if !ok {
		e.log.Info("short link not found", "action", "resolve", "code", code)
		return nil, domain.ErrNotFound
	}

	now := e.clock.Now()
	if !entry.IsLive(now) {
		if entry.IsValid {
			entry.IsValid = false
			e.persistLocked(ctx)
		}
		e.log.Info("short link expired", "action", "resolve",
			"code", code, "expired_at", entry.ExpiresAt)
		return nil, domain.ErrExpired
	}
	return entry, nil
}

// IncrementClicks counts a click on a live code. It reports failure for
// unknown or expired codes without touching the counter.
func (e *Engine) IncrementClicks(ctx context.Context, code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.resolveLocked(ctx, code)
	if err != nil {
		return false
	}

	entry.Clicks++
	e.persistLocked(ctx)
	e.log.Info("click recorded", "action", "click", "code", code, "clicks", entry.Clicks)
	return true
}

// List returns a snapshot of all entries, newest first.
func (e *Engine) List() []*domain.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.All()
}

// Delete removes the entry with the given id. A miss returns false and
// triggers no persistence write.
func (e *Engine) Delete(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Remove(id); err != nil {
		e.log.Info("delete missed", "action", "delete", "id", id)
		return false
	}
	e.persistLocked(ctx)
	e.log.Info("short link deleted", "action", "delete", "id", id)
	return true
}

// Sweep physically removes every entry past its expiry, both soft-expired
// ones and those that lapsed since the last pass. It returns the number
// removed.
func (e *Engine) Sweep(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	removed := 0
	for _, entry := range e.store.All() {
		if !entry.IsExpired(now) && entry.IsValid {
			continue
		}
		if stored, ok := e.store.GetByID(entry.ID); ok {
			stored.IsValid = false
		}
		if err := e.store.Remove(entry.ID); err == nil {
			removed++
		}
	}

	if removed > 0 {
		e.persistLocked(ctx)
		e.log.Info("expired links swept", "action", "sweep", "removed", removed)
	} else {
		e.log.Debug("sweep found nothing to remove", "action", "sweep")
	}
	return removed
}

// persistLocked writes through the current state. Persistence failures are
// absorbed here: they are logged and never abort the calling operation.
func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.persister.Save(ctx, e.store.All(), e.store.CodeIndex()); err != nil {
		e.log.Warn("persisting state failed", "action", "persist", "error", err)
	}
}
