package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/aleister1102/figmabot/internal/chat"
	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/datastore"
	"github.com/aleister1102/figmabot/internal/figma"
	"github.com/aleister1102/figmabot/internal/files"
	"github.com/aleister1102/figmabot/internal/httpclient"
	"github.com/aleister1102/figmabot/internal/logger"
	"github.com/aleister1102/figmabot/internal/tracing"
	"github.com/rs/zerolog"
)

// app holds the wired components for one CLI invocation.
type app struct {
	cfg     *config.GlobalConfig
	log     *logger.Logger
	zlog    zerolog.Logger
	backend *datastore.Backend
	closers []func() error
}

// loadApp loads configuration and builds the logger. Storage is opened on demand.
func loadApp(flags *AppFlags) (*app, error) {
	bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		return nil, common.WrapError(err, "could not load global config")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, common.WrapError(err, "could not initialize logger")
	}

	a := &app{cfg: cfg, log: lg, zlog: *lg.GetZerolog()}
	a.closers = append(a.closers, lg.Close)
	return a, nil
}

func (a *app) openBackend(ctx context.Context) (*datastore.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	backend, err := datastore.Open(ctx, a.cfg.StorageConfig, a.zlog)
	if err != nil {
		return nil, common.WrapError(err, "could not open storage")
	}
	a.backend = backend
	a.closers = append([]func() error{backend.Close}, a.closers...)
	return backend, nil
}

// buildService wires the file list pipeline. When no webhook is configured
// chat payloads are written to fallback instead.
func (a *app) buildService(ctx context.Context, fallback io.Writer) (*files.Service, error) {
	backend, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}

	shutdown, err := tracing.Setup(a.cfg.TracingConfig.Enabled, a.cfg.TracingConfig.PrettyPrint, nil)
	if err != nil {
		a.zlog.Warn().Err(err).Msg("Tracing setup failed, continuing without spans")
	} else {
		a.closers = append([]func() error{func() error { return shutdown(context.Background()) }}, a.closers...)
	}

	hc, err := httpclient.NewHTTPClient(httpclient.ConfigFromGlobal(a.cfg.HTTPClientConfig), a.zlog.With().Str("module", "HTTPClient").Logger())
	if err != nil {
		return nil, common.WrapError(err, "could not create HTTP client")
	}

	var messenger files.Messenger
	if a.cfg.NotificationConfig.WebhookURL != "" {
		messenger = chat.NewMessenger(hc, a.cfg.NotificationConfig, a.zlog)
	} else {
		a.zlog.Warn().Msg("Chat webhook URL not set, writing payloads to stdout")
		messenger = chat.NewWriterMessenger(fallback, a.cfg.NotificationConfig)
	}

	return files.NewService(files.Dependencies{
		Subscriptions: backend.Subscriptions,
		Tokens:        backend.Store,
		Fetcher:       figma.NewClient(hc, a.cfg.FigmaConfig.APIBaseURL, a.zlog),
		Messenger:     messenger,
		FileURLBase:   a.cfg.FigmaConfig.FileBaseURL,
	}, a.zlog), nil
}

// Close releases everything in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
