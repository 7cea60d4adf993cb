// Package app assembles the adapters and services behind the commands.
package app

import (
	"clipbatch/internal/adapters/ffmpeg"
	"clipbatch/internal/adapters/localstorage"
	"clipbatch/internal/adapters/sheets"
	"clipbatch/internal/adapters/youtube"
	"clipbatch/internal/adapters/ytdlp"
	"clipbatch/internal/config"
	"clipbatch/internal/core/ports"
	"clipbatch/internal/logging"
	"clipbatch/internal/service"
	"clipbatch/internal/trim"
)

// App holds the wired components for one run.
type App struct {
	Config      *config.Config
	Storage     *localstorage.LocalStorage
	MetadataLog *sheets.MetadataLog
	Runner      *service.JobRunner
}

// New wires every adapter from cfg. metadataLogPath overrides the configured
// metadata log location when not empty.
func New(cfg *config.Config, metadataLogPath string, logger logging.Logger) *App {
	if metadataLogPath == "" {
		metadataLogPath = cfg.ResolvePath(cfg.MetadataLog)
	}

	fetcher := ytdlp.NewYtDlpFetcher(cfg.Fetch, logger)
	var info ports.InfoFetcher = fetcher
	if cfg.MetadataSource == "native" {
		info = youtube.NewInfoFetcher(cfg.Fetch.InfoTimeout, logger)
	}

	tool := ffmpeg.NewTool(cfg.Trim, logger)
	storage := localstorage.NewLocalStorage(cfg.OutputDir, cfg.ScratchDir)
	trimmer := trim.NewTrimmer(tool, storage, logger)
	metadata := sheets.NewMetadataLog(metadataLogPath, cfg.HeaderLocale)

	return &App{
		Config:      cfg,
		Storage:     storage,
		MetadataLog: metadata,
		Runner:      service.NewJobRunner(info, fetcher, trimmer, tool, storage, metadata, logger),
	}
}

// Orchestrator returns a batch orchestrator writing its summary to the
// configured summary log.
func (a *App) Orchestrator(logger logging.Logger) *service.Orchestrator {
	return service.NewOrchestrator(
		a.Runner,
		a.Storage,
		sheets.NewSummaryWriter(),
		a.Config.ResolvePath(a.Config.SummaryLog),
		logger,
	)
}
