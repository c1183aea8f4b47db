package engine

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yuquest/internal/mandala"
	"yuquest/internal/storage"
)

// aggregate names one mutual-exclusion scope per user. Progression, tasks
// and the grid are independent aggregates: they lock independently, and
// different users never contend.
type aggregate string

const (
	aggProgression aggregate = "progression"
	aggTask        aggregate = "task"
	aggGrid        aggregate = "grid"
)

type lockMap struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (m *lockMap) get(uid string, agg aggregate) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks == nil {
		m.locks = map[string]*sync.Mutex{}
	}
	key := uid + "/" + string(agg)
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Service is the progression engine over per-user aggregates. Every call
// holds the (uid, aggregate) lock for its full read-modify-write; even
// nominal reads take it, because a first touch provisions the aggregate.
type Service struct {
	db  *sql.DB
	log *zap.Logger

	players    *storage.PlayerRepo
	companions *storage.CompanionRepo
	tasks      *storage.TaskRepo
	xpEvents   *storage.XPEventRepo
	sysEvents  *storage.SystemEventRepo
	grids      *storage.GridRepo

	rules     mandala.Rules
	adjacency mandala.Adjacency
	ringSize  int

	now func() time.Time

	locks lockMap
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithRules(r mandala.Rules) Option {
	return func(s *Service) { s.rules = r }
}

func WithAdjacency(a mandala.Adjacency) Option {
	return func(s *Service) { s.adjacency = a }
}

func WithEventRingSize(n int) Option {
	return func(s *Service) { s.ringSize = n }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:         db,
		log:        zap.NewNop(),
		players:    storage.NewPlayerRepo(db),
		companions: storage.NewCompanionRepo(db),
		tasks:      storage.NewTaskRepo(db),
		xpEvents:   storage.NewXPEventRepo(db),
		sysEvents:  storage.NewSystemEventRepo(db),
		grids:      storage.NewGridRepo(db),
		rules:      mandala.DefaultRules(),
		adjacency:  mandala.AdjacencyOrthogonal,
		ringSize:   DefaultEventRingSize,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TaskRepo() *storage.TaskRepo       { return s.tasks }
func (s *Service) XPEventRepo() *storage.XPEventRepo { return s.xpEvents }

// loadCoordinator assembles both progression tracks for one user,
// provisioning rows on first touch. Callers must hold the
// (uid, aggProgression) lock. The stored level is display-only; the
// authoritative level is recomputed from total XP on every load.
func (s *Service) loadCoordinator(ctx context.Context, uid string) (*Coordinator, error) {
	p, err := s.players.GetOrCreate(ctx, uid)
	if err != nil {
		return nil, err
	}
	c, err := s.companions.GetOrCreate(ctx, uid, s.now())
	if err != nil {
		return nil, err
	}
	events, err := s.sysEvents.ListRecent(ctx, uid, s.ringSize)
	if err != nil {
		return nil, err
	}

	co := NewCoordinator(
		&PlayerProgression{UID: uid, XPTotal: p.XPTotal},
		&CompanionProgression{
			UID:               uid,
			Level:             c.Level,
			Traits:            c.Traits,
			LastNaturalGrowth: c.LastNaturalGrowth,
		},
	)
	co.RingSize = s.ringSize
	for _, ev := range events {
		co.Events = append(co.Events, SystemEvent{ID: ev.ID, Message: ev.Message, CreatedAt: ev.CreatedAt})
	}
	return co, nil
}

// saveCoordinator persists both tracks and the pending XP history in one
// transaction, so a mid-save failure never leaves the player row ahead of
// its audit log.
func (s *Service) saveCoordinator(ctx context.Context, co *Coordinator) error {
	p := &storage.Player{
		UID:     co.Player.UID,
		XPTotal: co.Player.XPTotal,
		Level:   co.Player.Level(),
	}
	c := &storage.Companion{
		UID:               co.Companion.UID,
		Level:             co.Companion.Level,
		Traits:            co.Companion.Traits,
		LastNaturalGrowth: co.Companion.LastNaturalGrowth,
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.players.Update(ctx, tx, p); err != nil {
			return err
		}
		if err := s.companions.Update(ctx, tx, c); err != nil {
			return err
		}
		for _, ev := range co.Player.History {
			if err := s.xpEvents.Insert(ctx, tx, storage.XPEvent{
				ID:        uuid.NewString(),
				UID:       co.Player.UID,
				Amount:    ev.Amount,
				Reason:    ev.Reason,
				CreatedAt: ev.CreatedAt,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	co.Player.History = nil
	return nil
}

// AddPlayerXP applies an XP grant to one user's player track and lets the
// companion react to the fresh player level.
func (s *Service) AddPlayerXP(ctx context.Context, uid string, amount int, reason string) (*CombinedResult, error) {
	lock := s.locks.get(uid, aggProgression)
	lock.Lock()
	defer lock.Unlock()

	co, err := s.loadCoordinator(ctx, uid)
	if err != nil {
		return nil, err
	}

	res, err := co.AddPlayerXP(amount, reason, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.saveCoordinator(ctx, co); err != nil {
		return nil, err
	}
	if err := s.sysEvents.Insert(ctx, storage.SystemEvent{
		ID:        res.SystemEvent.ID,
		UID:       uid,
		Message:   res.SystemEvent.Message,
		CreatedAt: res.SystemEvent.CreatedAt,
	}, s.ringSize); err != nil {
		return nil, err
	}

	s.log.Debug("xp applied",
		zap.String("uid", uid),
		zap.Int("amount", amount),
		zap.String("reason", reason),
		zap.Int("level", res.Player.NewLevel),
		zap.Bool("level_up", res.Player.LevelUp),
		zap.Bool("companion_grew", res.CompanionGrew),
	)
	return res, nil
}

// SimulateXP previews an XP grant without mutating progression state.
func (s *Service) SimulateXP(ctx context.Context, uid string, amount int) (*AddXPResult, error) {
	lock := s.locks.get(uid, aggProgression)
	lock.Lock()
	defer lock.Unlock()

	co, err := s.loadCoordinator(ctx, uid)
	if err != nil {
		return nil, err
	}
	return co.Player.Simulate(amount)
}

// Status returns both tracks plus the resonance signal.
func (s *Service) Status(ctx context.Context, uid string) (*CombinedStatus, error) {
	lock := s.locks.get(uid, aggProgression)
	lock.Lock()
	defer lock.Unlock()

	co, err := s.loadCoordinator(ctx, uid)
	if err != nil {
		return nil, err
	}
	st := co.Status()
	return &st, nil
}

// GrowFromInteraction lets an allow-listed interaction grow the companion
// under the player-level gate.
func (s *Service) GrowFromInteraction(ctx context.Context, uid string, kind InteractionKind) (bool, error) {
	lock := s.locks.get(uid, aggProgression)
	lock.Lock()
	defer lock.Unlock()

	co, err := s.loadCoordinator(ctx, uid)
	if err != nil {
		return false, err
	}
	grew, err := co.Companion.GrowFromInteraction(kind, co.Player.Level(), s.now())
	if err != nil {
		return false, err
	}
	if err := s.saveCoordinator(ctx, co); err != nil {
		return false, err
	}
	if grew {
		ev := co.appendEvent(fmt.Sprintf("Yu grew to level %d (%s)", co.Companion.Level, kind), s.now())
		if err := s.sysEvents.Insert(ctx, storage.SystemEvent{
			ID:        ev.ID,
			UID:       uid,
			Message:   ev.Message,
			CreatedAt: ev.CreatedAt,
		}, s.ringSize); err != nil {
			return false, err
		}
		s.log.Debug("companion grew from interaction",
			zap.String("uid", uid),
			zap.String("kind", string(kind)),
			zap.Int("companion_level", co.Companion.Level),
		)
	}
	return grew, nil
}
