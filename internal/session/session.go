// Package session holds per-user draft state: the recipients loaded for the
// session, the last template shown and the last generated draft. Nothing in
// here is shared between sessions.
package session

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sima8766/iran-transitional-leader-email-app/internal/email"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/models"
)

var ErrNameRequired = errors.New("please enter your name first")

type Session struct {
	mu sync.Mutex

	recipients []string
	pool       *email.Pool
	rng        *rand.Rand

	last  int // -1 until the first draft
	draft *models.Draft
}

// New returns a session over recipients and pool. rng must not be shared
// with other sessions.
func New(recipients []string, pool *email.Pool, rng *rand.Rand) *Session {
	return &Session{
		recipients: recipients,
		pool:       pool,
		rng:        rng,
		last:       -1,
	}
}

// Factory builds a fresh session.
type Factory func() (*Session, error)

// NewFactory returns a Factory that loads recipients once per session and
// seeds each session with its own random source.
func NewFactory(load func() ([]string, error), pool *email.Pool) Factory {
	return func() (*Session, error) {
		recipients, err := load()
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		return New(recipients, pool, rng), nil
	}
}

// Generate picks a template different from the previous one, signs it with
// name and builds the mailto link.
func (s *Session) Generate(name string) (models.Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Draft{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := email.PickNext(s.rng, s.last, s.pool.Size())
	s.last = idx

	subject, body := s.pool.Compose(idx, name)
	d := models.Draft{
		TemplateIndex:  idx,
		Subject:        subject,
		Body:           body,
		Link:           email.BuildLink(s.recipients, subject, body),
		RecipientCount: len(s.recipients),
		CreatedAt:      time.Now(),
	}
	s.draft = &d

	return d, nil
}

// Last returns the most recently generated draft.
func (s *Session) Last() (models.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return models.Draft{}, false
	}
	return *s.draft, true
}
