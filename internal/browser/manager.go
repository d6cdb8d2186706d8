package browser

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ActivePolicy определяет поведение Start при уже активной сессии.
type ActivePolicy int

const (
	// ReplaceActive закрывает старую сессию и запускает новую.
	ReplaceActive ActivePolicy = iota
	// RejectActive возвращает ErrSessionActive.
	RejectActive
)

// Manager запускает и закрывает браузер одного сценария. В каждый момент
// у менеджера не больше одной активной сессии. Раннер создает отдельный
// Manager на каждый сценарий; мьютекс защищает слот, если шаг сценария
// обращается к менеджеру из нескольких горутин.
type Manager struct {
	mu       sync.Mutex
	variants map[string]Variant
	active   *Session
	policy   ActivePolicy
	log      *zap.Logger
}

type ManagerOption func(*Manager)

func WithActivePolicy(p ActivePolicy) ManagerOption {
	return func(m *Manager) {
		m.policy = p
	}
}

func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func NewManager(variants []Variant, opts ...ManagerOption) *Manager {
	m := &Manager{
		variants: make(map[string]Variant, len(variants)),
		policy:   ReplaceActive,
		log:      zap.NewNop(),
	}
	for _, v := range variants {
		m.variants[strings.ToLower(v.Name())] = v
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start запускает браузер variant и регистрирует его как активную сессию.
// При ошибке запуска активной сессии не остается.
func (m *Manager) Start(ctx context.Context, variant string, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.variants[strings.ToLower(strings.TrimSpace(variant))]
	if !ok {
		return nil, &UnsupportedVariantError{Variant: variant, Supported: m.supported()}
	}

	if m.active != nil {
		if m.policy == RejectActive {
			return nil, fmt.Errorf("%w: %s", ErrSessionActive, m.active.ID)
		}
		m.log.Info("Замена активной сессии", zap.String("session_id", m.active.ID))
		if err := m.stopLocked(); err != nil {
			m.log.Warn("Ошибка закрытия предыдущей сессии", zap.Error(err))
		}
	}

	opts = opts.Normalize()
	started := time.Now()

	inst, err := v.Launch(ctx, opts)
	if err != nil {
		// прерывание пользователем не считается сбоем драйвера
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &LaunchError{Variant: v.Name(), Err: err}
	}

	session := newSession(v.Name(), opts, inst)
	m.active = session

	m.log.Info("Браузер запущен",
		zap.String("browser", v.Name()),
		zap.String("session_id", session.ID),
		zap.Bool("headless", opts.Headless),
		zap.Int("width", opts.WindowWidth),
		zap.Int("height", opts.WindowHeight),
		zap.Duration("startup", time.Since(started)),
	)
	return session, nil
}

// Current возвращает активную сессию или nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Stop закрывает активную сессию. Без активной сессии ничего не делает.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked()
}

func (m *Manager) stopLocked() error {
	if m.active == nil {
		return nil
	}
	session := m.active
	m.active = nil

	if err := session.close(); err != nil {
		return fmt.Errorf("ошибка закрытия браузера %s: %w", session.Variant, err)
	}
	m.log.Info("Браузер закрыт", zap.String("session_id", session.ID))
	return nil
}

// Variants возвращает отсортированные имена зарегистрированных браузеров.
func (m *Manager) Variants() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.supported()
}

func (m *Manager) supported() []string {
	names := make([]string, 0, len(m.variants))
	for name := range m.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
