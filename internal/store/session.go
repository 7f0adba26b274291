// Package store holds the client-side state managers: the session context and
// the catalog, cart and like stores it scopes. Stores are constructed
// explicitly with their dependencies and composed at the application root;
// there are no package-level singletons.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/internal/storage"
	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

// Session is the single source of truth for who is using the client right
// now. It moves between exactly two states, unauthenticated and
// authenticated; Establish and Clear are the only transitions.
type Session struct {
	mu      sync.Mutex
	storage storage.Store
	logger  *slog.Logger
	current *domain.Session
	hooks   []func(context.Context)
}

// NewSession creates an unauthenticated session context.
func NewSession(st storage.Store, logger *slog.Logger) *Session {
	return &Session{
		storage: st,
		logger:  logger,
	}
}

// OnCleared registers a hook invoked whenever the session is cleared. Stores
// holding session-scoped state register a reset here so no cache leaks
// between principals.
func (s *Session) OnCleared(hook func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Restore loads a previously persisted principal from local storage. A
// shopper record takes precedence over a merchant record; both keys are
// optional on cold start.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok, err := s.read(ctx, storage.KeyShopper, domain.KindShopper); err != nil {
		return err
	} else if ok {
		s.current = &sess
		return nil
	}

	sess, ok, err := s.read(ctx, storage.KeyMerchantRecord, domain.KindMerchant)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if sess.PrincipalID == "" {
		// Older snapshots stored the merchant id under its own key.
		if blob, found, err := s.storage.Get(ctx, storage.KeyMerchantID); err == nil && found {
			sess.PrincipalID = string(blob)
		}
	}
	s.current = &sess
	return nil
}

func (s *Session) read(ctx context.Context, key string, kind domain.PrincipalKind) (domain.Session, bool, error) {
	blob, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		return domain.Session{}, false, apperrors.Wrap(err, "restore session")
	}
	if !ok {
		return domain.Session{}, false, nil
	}
	var sess domain.Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		// A corrupt record is treated as absent rather than fatal.
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "discarding unreadable session record",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return domain.Session{}, false, nil
	}
	sess.Kind = kind
	return sess, true, nil
}

// Establish activates the given principal and writes it through to local
// storage. When the record carries a token but no id, the token's subject
// claim supplies the id; the token is otherwise opaque.
func (s *Session) Establish(ctx context.Context, sess domain.Session) error {
	if sess.PrincipalID == "" && sess.Token != "" {
		sess.PrincipalID = subjectClaim(sess.Token)
	}
	if !sess.Authenticated() {
		return apperrors.InvalidInput("principal id is required to establish a session")
	}
	if sess.Kind != domain.KindShopper && sess.Kind != domain.KindMerchant {
		return apperrors.InvalidInput("unknown principal kind")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, "encode session")
	}

	key := storage.KeyShopper
	if sess.Kind == domain.KindMerchant {
		key = storage.KeyMerchantRecord
	}
	if err := s.storage.Put(ctx, key, blob); err != nil {
		return apperrors.Wrap(err, "persist session")
	}
	if sess.Kind == domain.KindMerchant {
		if err := s.storage.Put(ctx, storage.KeyMerchantID, []byte(sess.PrincipalID)); err != nil {
			return apperrors.Wrap(err, "persist merchant id")
		}
	}

	s.current = &sess
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "session established",
		slog.String("principal_id", sess.PrincipalID),
		slog.String("kind", string(sess.Kind)),
	)
	return nil
}

// Clear logs the principal out: the persisted session records are removed and
// every registered hook runs so dependent stores discard session-scoped
// state.
func (s *Session) Clear(ctx context.Context) {
	log := logger.WithContext(ctx, s.logger)

	s.mu.Lock()
	s.current = nil
	for _, key := range []string{storage.KeyShopper, storage.KeyMerchantRecord, storage.KeyMerchantID} {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to remove session record",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	hooks := make([]func(context.Context), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx)
	}

	log.InfoContext(ctx, "session cleared")
}

// Current returns the active principal, if any.
func (s *Session) Current() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// PrincipalID returns the active principal id, or "" when unauthenticated.
func (s *Session) PrincipalID() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.PrincipalID
}

// Token returns the active principal's bearer token, or "".
func (s *Session) Token() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.Token
}

// subjectClaim extracts the subject from a JWT without verifying it. The
// client has no signing key; the claim is a display/scoping fallback only.
func subjectClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
