package usecase

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/service/i18n"
)

// DefaultCooldown is how long a participant's response stays live
// before it is purged and the user reverts to "inactive".
const DefaultCooldown = 180 * time.Minute

type UseCases struct {
	repo           interfaces.Repository
	notifier       interfaces.Notifier
	translator     interfaces.Translator
	clock          types.Clock
	cooldown       time.Duration
	superuserLogin string
	defaultLocale  string

	Registry *RegistryUseCase
	Summon   *SummonUseCase
	Account  *AccountUseCase
}

type Option func(*UseCases)

func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

func WithTranslator(t interfaces.Translator) Option {
	return func(uc *UseCases) {
		uc.translator = t
	}
}

func WithClock(c types.Clock) Option {
	return func(uc *UseCases) {
		uc.clock = c
	}
}

func WithCooldown(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.cooldown = d
	}
}

// WithSuperuser sets the distinguished login that bypasses all rights
// checks.
func WithSuperuser(login string) Option {
	return func(uc *UseCases) {
		uc.superuserLogin = login
	}
}

func WithDefaultLocale(locale string) Option {
	return func(uc *UseCases) {
		uc.defaultLocale = locale
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		translator:    i18n.New(),
		clock:         types.SystemClock{},
		cooldown:      DefaultCooldown,
		defaultLocale: i18n.DefaultLocale,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Registry = &RegistryUseCase{uc: uc}
	uc.Summon = &SummonUseCase{uc: uc}
	uc.Account = &AccountUseCase{uc: uc}

	return uc
}

// Cooldown returns the configured participant expiry window
func (u *UseCases) Cooldown() time.Duration {
	return u.cooldown
}

// Repo returns the underlying repository
func (u *UseCases) Repo() interfaces.Repository {
	return u.repo
}
