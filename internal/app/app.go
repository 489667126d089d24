package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/codstore/internal/adapters/events"
	"github.com/phenrril/codstore/internal/adapters/httpserver"
	"github.com/phenrril/codstore/internal/adapters/identity"
	"github.com/phenrril/codstore/internal/adapters/kv/pebblestore"
	"github.com/phenrril/codstore/internal/adapters/kv/redisstore"
	"github.com/phenrril/codstore/internal/adapters/notify"
	"github.com/phenrril/codstore/internal/adapters/repo/memory"
	"github.com/phenrril/codstore/internal/adapters/repo/postgres"
	"github.com/phenrril/codstore/internal/auth"
	"github.com/phenrril/codstore/internal/config"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
	"github.com/phenrril/codstore/internal/metrics"
	"github.com/phenrril/codstore/internal/usecase"
)

type Repos struct {
	Products   domain.ProductRepo
	Categories domain.CategoryRepo
	FAQs       domain.FAQRepo
	Settings   domain.SettingsRepo
	Orders     domain.OrderRepo
	Admins     domain.AdminRepo
}

type App struct {
	Config  config.Config
	DB      *gorm.DB
	Repos   Repos
	KV      kv.Store
	Metrics *metrics.Registry
	Cookies *auth.Signer
	Google  *identity.Google

	ProductUC *usecase.ProductUC
	ContentUC *usecase.ContentUC
	CartUC    *usecase.CartUC
	OrderUC   *usecase.OrderUC
	AuthUC    *usecase.AuthUC

	closers []func() error
}

func postgresRepos(db *gorm.DB) Repos {
	return Repos{
		Products:   postgres.NewProductRepo(db),
		Categories: postgres.NewCategoryRepo(db),
		FAQs:       postgres.NewFAQRepo(db),
		Settings:   postgres.NewSettingsRepo(db),
		Orders:     postgres.NewOrderRepo(db),
		Admins:     postgres.NewAdminRepo(db),
	}
}

func memoryRepos() Repos {
	return Repos{
		Products:   memory.NewProductRepo(),
		Categories: memory.NewCategoryRepo(),
		FAQs:       memory.NewFAQRepo(),
		Settings:   memory.NewSettingsRepo(),
		Orders:     memory.NewOrderRepo(),
		Admins:     memory.NewAdminRepo(),
	}
}

// NewApp wires the application. db is required for the postgres backend and
// ignored for the memory one.
func NewApp(ctx context.Context, cfg config.Config, db *gorm.DB) (*App, error) {
	a := &App{Config: cfg, Metrics: metrics.NewRegistry(), Cookies: auth.NewSigner(cfg.SessionKey)}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres backend needs a database")
		}
		a.DB = db
		a.Repos = postgresRepos(db)
	default:
		a.Repos = memoryRepos()
	}

	store, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}
	a.KV = store

	var notifiers []domain.OrderNotifier
	if cfg.Kafka.Brokers != "" {
		pub := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		notifiers = append(notifiers, pub)
		a.closers = append(a.closers, pub.Close)
		log.Info().Str("topic", cfg.Kafka.Topic).Msg("kafka order events enabled")
	}
	if alert := staffAlerts(cfg); alert != nil {
		notifiers = append(notifiers, alert)
	} else {
		log.Warn().Msg("telegram and smtp not configured, order alerts disabled")
	}

	a.Google = identity.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.BaseURL+"/auth/google/callback", a.Repos.Admins)

	a.ProductUC = &usecase.ProductUC{Products: a.Repos.Products, Categories: a.Repos.Categories}
	a.ContentUC = &usecase.ContentUC{FAQs: a.Repos.FAQs, Settings: a.Repos.Settings}
	a.CartUC = &usecase.CartUC{KV: a.KV, Products: a.Repos.Products, Metrics: a.Metrics}
	a.OrderUC = &usecase.OrderUC{
		Orders:    a.Repos.Orders,
		Products:  a.Repos.Products,
		Settings:  a.Repos.Settings,
		Notifiers: notifiers,
		Metrics:   a.Metrics,
	}
	a.AuthUC = &usecase.AuthUC{
		Identity: &identity.Password{Admins: a.Repos.Admins},
		Admins:   a.Repos.Admins,
		Sessions: a.KV,
		Signer:   auth.NewSigner(cfg.JWTSecret),
		TTL:      cfg.SessionTTL,
		Metrics:  a.Metrics,
	}
	return a, nil
}

// staffAlerts sends to Telegram and falls back to e-mail when both are configured.
func staffAlerts(cfg config.Config) domain.OrderNotifier {
	var alerts []domain.OrderNotifier
	if tg := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatIDs); tg != nil {
		alerts = append(alerts, tg)
	}
	if mail := notify.NewEmail(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.To); mail != nil {
		alerts = append(alerts, mail)
	}
	switch len(alerts) {
	case 0:
		return nil
	case 1:
		return alerts[0]
	}
	return &notify.Fallback{Primary: alerts[0], Secondary: alerts[1]}
}

// openKV prefers redis, then pebble; an empty PEBBLE_DIR keeps everything in memory.
func (a *App) openKV(ctx context.Context) (kv.Store, error) {
	switch {
	case a.Config.Redis.URL != "":
		client, err := a.Config.Redis.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		log.Info().Msg("kv: redis")
		return redisstore.New(client), nil
	case a.Config.PebbleDir != "":
		st, err := pebblestore.Open(a.Config.PebbleDir)
		if err != nil {
			return nil, fmt.Errorf("pebble: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		log.Info().Str("dir", a.Config.PebbleDir).Msg("kv: pebble")
		return st, nil
	}
	log.Warn().Msg("kv: in-memory, carts and sessions are lost on restart")
	return kv.NewMemory(), nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Products:      a.ProductUC,
		Content:       a.ContentUC,
		Carts:         a.CartUC,
		Orders:        a.OrderUC,
		Auth:          a.AuthUC,
		Google:        a.Google,
		Cookies:       a.Cookies,
		Metrics:       a.Metrics,
		SecureCookies: a.Config.Production(),
		RateLimit:     a.Config.RateLimit,
		TrustProxy:    a.Config.TrustProxy,
	})
}

func (a *App) MigrateAndSeed(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.WithContext(ctx).AutoMigrate(
			&domain.Category{}, &domain.Product{}, &domain.FAQ{}, &domain.Settings{},
			&domain.Order{}, &domain.OrderItem{}, &domain.AdminUser{}, &domain.AdminGrant{},
		); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := a.seedSettings(ctx); err != nil {
		return err
	}
	return a.seedAdmin(ctx)
}

func (a *App) seedSettings(ctx context.Context) error {
	_, err := a.Repos.Settings.Get(ctx)
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	s := domain.DefaultSettings()
	s.ID = uuid.New()
	return a.Repos.Settings.Save(ctx, &s)
}

// seedAdmin makes sure the ADMIN_EMAIL account exists and holds the admin
// grant. An existing account keeps its password.
func (a *App) seedAdmin(ctx context.Context) error {
	if a.Config.AdminEmail == "" {
		return nil
	}
	u, err := a.Repos.Admins.FindByEmail(ctx, a.Config.AdminEmail)
	if errors.Is(err, domain.ErrNotFound) {
		hash, herr := identity.HashPassword(a.Config.AdminPassword)
		if herr != nil {
			return herr
		}
		u = &domain.AdminUser{ID: uuid.New(), Email: a.Config.AdminEmail, PasswordHash: hash, Name: "Admin"}
		if err := a.Repos.Admins.Save(ctx, u); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info().Str("email", u.Email).Msg("bootstrap admin created")
	} else if err != nil {
		return err
	}
	return a.Repos.Admins.Grant(ctx, u.ID)
}

// Close waits for queued order alerts before releasing the kv store and the
// kafka writer.
func (a *App) Close() error {
	if a.OrderUC != nil {
		a.OrderUC.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
