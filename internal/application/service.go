package application

import (
	"log/slog"
	"time"

	"github.com/streamforge/media-access-service/internal/ports"
)

// Expiry bounds for signed streaming URLs. The upper bound is the contract
// ceiling; tighter limits are a deployment policy choice made elsewhere.
const (
	MinStreamExpiry = 300 * time.Second
	MaxStreamExpiry = 86400 * time.Second
)

type Config struct {
	DefaultStreamExpiry time.Duration
	LibraryDefaultLimit int
	LibraryMaxLimit     int
}

type Service struct {
	cfg       Config
	streaming ports.StreamingReader
	progress  ports.ProgressRepository
	purchases ports.PurchaseRepository
	settings  ports.SettingsRepository
	cache     ports.SettingsCache
	signer    ports.URLSigner
	logger    *slog.Logger
	nowFn     func() time.Time
}

type Dependencies struct {
	Config    Config
	Streaming ports.StreamingReader
	Progress  ports.ProgressRepository
	Purchases ports.PurchaseRepository
	Settings  ports.SettingsRepository
	Cache     ports.SettingsCache
	Signer    ports.URLSigner
	Logger    *slog.Logger
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.DefaultStreamExpiry <= 0 {
		cfg.DefaultStreamExpiry = time.Hour
	}
	if cfg.LibraryDefaultLimit <= 0 {
		cfg.LibraryDefaultLimit = 20
	}
	if cfg.LibraryMaxLimit <= 0 {
		cfg.LibraryMaxLimit = 100
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		streaming: deps.Streaming,
		progress:  deps.Progress,
		purchases: deps.Purchases,
		settings:  deps.Settings,
		cache:     deps.Cache,
		signer:    deps.Signer,
		logger:    logger.With("module", "application"),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// audit returns the logger for security-relevant grant/denial events. These
// are a distinct event class from ordinary application logs.
func (s *Service) audit() *slog.Logger {
	return s.logger.With("event_class", "access_audit")
}
