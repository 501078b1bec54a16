package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mssola/useragent"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/observability/metrics"
	"github.com/iliyamo/civil-registry/internal/queue"
)

const maxUserAgent = 500

type requestMetaKey struct{}

// RequestMeta is the client information stored with audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// WithRequestMeta attaches client information to ctx for the recorder.
func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func requestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}

// Entry describes one audited action. Actor is nil for anonymous requests
// such as a password reset. MairieID defaults to the actor's tenant.
type Entry struct {
	Actor       *authz.Principal
	Action      model.AuditAction
	EntityType  string
	EntityID    uint64
	MairieID    *uint64
	Old         any
	New         any
	Description string
}

// Recorder writes audit entries. Writes are best effort: a failure is
// logged and counted but never returned to the caller.
type Recorder struct {
	store     AuditStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
	spawn     func(func())
}

type RecorderOption func(r *Recorder)

func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = logger }
}

// WithEventPublisher forwards every stored entry to p in the background.
func WithEventPublisher(p EventPublisher) RecorderOption {
	return func(r *Recorder) { r.publisher = p }
}

func NewRecorder(store AuditStore, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		spawn:  func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores e. It returns once the row is written (or the write failed).
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.store == nil {
		return
	}
	meta := requestMetaFrom(ctx)
	row := &model.AuditLog{
		Action:     e.Action,
		EntityType: e.EntityType,
		CreatedAt:  r.now().UTC(),
	}
	if e.EntityID != 0 {
		id := e.EntityID
		row.EntityID = &id
	}
	if e.Actor != nil {
		uid := e.Actor.UserID
		row.UserID = &uid
		row.MairieID = e.Actor.MairieID
	}
	if e.MairieID != nil {
		row.MairieID = e.MairieID
	}
	row.OldValues = r.snapshot(e.Old)
	row.NewValues = r.snapshot(e.New)
	row.Description = optString(e.Description)
	row.IPAddress = optString(meta.IP)
	row.UserAgent = optString(truncate(meta.UserAgent, maxUserAgent))

	if err := r.store.Insert(ctx, row); err != nil {
		metrics.ObserveAuditWrite("error")
		r.logger.Error("audit write failed",
			slog.String("action", string(e.Action)),
			slog.String("entity", e.EntityType),
			slog.Uint64("entity_id", e.EntityID),
			slog.Any("error", err))
		return
	}
	metrics.ObserveAuditWrite("ok")

	browser, os := clientOf(meta.UserAgent)
	r.logger.Debug("audit recorded",
		slog.Uint64("audit_id", row.ID),
		slog.String("action", string(e.Action)),
		slog.String("entity", e.EntityType),
		slog.String("browser", browser),
		slog.String("os", os))

	if r.publisher == nil {
		return
	}
	ev := queue.NewAuditEvent(row, browser, os)
	pubCtx := context.WithoutCancel(ctx)
	r.spawn(func() {
		ctx, cancel := context.WithTimeout(pubCtx, 5*time.Second)
		defer cancel()
		if err := r.publisher.PublishAudit(ctx, ev); err != nil {
			metrics.ObserveAuditPublish("error")
			r.logger.Warn("audit publish failed", slog.Uint64("audit_id", ev.AuditID), slog.Any("error", err))
			return
		}
		metrics.ObserveAuditPublish("ok")
	})
}

// Latest returns recent entries, optionally limited to one tenant.
func (r *Recorder) Latest(ctx context.Context, mairieID *uint64, limit int) ([]model.AuditLog, error) {
	return r.store.Latest(ctx, mairieID, limit)
}

func (r *Recorder) snapshot(v any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("audit snapshot not serializable", slog.Any("error", err))
		return nil
	}
	s := string(b)
	return &s
}

func clientOf(raw string) (browser, os string) {
	if raw == "" {
		return "", ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if version != "" {
		name += " " + version
	}
	return name, ua.OS()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
