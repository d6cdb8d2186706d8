package browser

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session - handle одного живого браузера. Владеет им Manager, который его
// запустил; закрывается только через Manager.Stop или замену при Start.
type Session struct {
	ID        string
	Variant   string
	Options   Options
	StartedAt time.Time

	instance  Instance
	alive     atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

func newSession(variant string, opts Options, inst Instance) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Variant:   variant,
		Options:   opts,
		StartedAt: time.Now(),
		instance:  inst,
	}
	s.alive.Store(true)
	return s
}

// Document возвращает страницу сессии для слоя interact.
func (s *Session) Document() Document {
	return s.instance
}

// Alive - false после закрытия браузера.
func (s *Session) Alive() bool {
	return s.alive.Load()
}

func (s *Session) close() error {
	s.closeOnce.Do(func() {
		s.alive.Store(false)
		s.closeErr = s.instance.Close()
	})
	return s.closeErr
}
