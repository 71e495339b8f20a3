package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tsukumogami/aurq/internal/aur"
	"github.com/tsukumogami/aurq/internal/buildinfo"
	"github.com/tsukumogami/aurq/internal/config"
	"github.com/tsukumogami/aurq/internal/httputil"
	"github.com/tsukumogami/aurq/internal/log"
	"github.com/tsukumogami/aurq/internal/progress"
	"github.com/tsukumogami/aurq/internal/userconfig"
)

// settings are the effective lookup parameters. Each comes from, in order
// of preference: a command-line flag, an AURQ_* environment variable, the
// user config file, the built-in default.
type settings struct {
	baseURL        string
	maxBatchSize   int
	maxConnections int
	timeout        time.Duration
}

func loadSettings() settings {
	s := settings{
		baseURL:        config.DefaultAURURL,
		maxBatchSize:   config.DefaultMaxBatchSize,
		maxConnections: config.DefaultMaxConnections,
		timeout:        config.DefaultAPITimeout,
	}

	userCfg, err := userconfig.Load()
	if err != nil {
		log.Default().Warn("ignoring config file", "error", err)
		userCfg = userconfig.DefaultConfig()
	}
	if userCfg.AURURL != "" {
		s.baseURL = userCfg.AURURL
	}
	if userCfg.MaxBatchSize > 0 {
		s.maxBatchSize = userCfg.MaxBatchSize
	}
	if userCfg.MaxConnections > 0 {
		s.maxConnections = userCfg.MaxConnections
	}
	if d, ok := userCfg.TimeoutDuration(); ok {
		s.timeout = d
	}

	if os.Getenv(config.EnvAURURL) != "" {
		s.baseURL = config.GetAURURL()
	}
	if os.Getenv(config.EnvMaxBatchSize) != "" {
		s.maxBatchSize = config.GetMaxBatchSize()
	}
	if os.Getenv(config.EnvMaxConnections) != "" {
		s.maxConnections = config.GetMaxConnections()
	}
	if os.Getenv(config.EnvAPITimeout) != "" {
		s.timeout = config.GetAPITimeout()
	}

	if baseURLFlag != "" {
		if err := config.ValidateAURURL(baseURLFlag); err != nil {
			log.Default().Warn("ignoring --baseurl", "error", err)
		} else {
			s.baseURL = strings.TrimSuffix(baseURLFlag, "/")
		}
	}
	if maxConnectionsFlag != 0 {
		s.maxConnections = config.ClampInt("--max-connections", maxConnectionsFlag,
			config.MinMaxConnections, config.MaxMaxConnections)
	}

	return s
}

// lookupContext bounds a whole lookup by the configured timeout.
func (s settings) lookupContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, s.timeout)
}

// newClient wires the HTTP client, transport and AUR client for s. When
// showProgress is set and stderr is a terminal, a spinner tracks batches
// until the returned stop function is called.
func (s settings) newClient(stderr io.Writer, showProgress bool) (*aur.Client, func()) {
	httpClient := httputil.NewSecureClient(httputil.ClientOptions{
		Timeout:           s.timeout,
		EnableCompression: true,
		MaxConnsPerHost:   s.maxConnections,
	})
	transport := aur.NewHTTPTransport(httpClient, s.baseURL,
		aur.WithUserAgent(buildinfo.UserAgent()),
		aur.WithTransportLogger(log.Default()),
	)

	opts := []aur.Option{
		aur.WithMaxBatchSize(s.maxBatchSize),
		aur.WithMaxConnections(s.maxConnections),
		aur.WithLogger(log.Default()),
	}

	stop := func() {}
	if showProgress && !quietFlag && progress.ShouldShowProgress() {
		spinner := progress.NewSpinner(stderr)
		spinner.Start(progress.BatchMessage(0, 1))
		opts = append(opts, aur.WithProgress(spinner.Batches))
		stop = spinner.Stop
	}

	return aur.NewClient(transport, opts...), stop
}
