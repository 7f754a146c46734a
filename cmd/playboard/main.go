package main

import (
	"playboard/internal/config"
	"playboard/internal/court"
	"playboard/internal/editor"
	"playboard/internal/env"
	"playboard/internal/graphics"
	"playboard/internal/kv/sqlitekv"
	"playboard/internal/logger"
	"playboard/internal/scene"
)

func main() {
	exported, envErr := env.Load(env.DefaultPath, config.EnvPrefix+"_")
	cfg, cfgErr := config.Load(config.DefaultDir)
	log, logErr := logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	defer log.Close()
	lg := log.Component("main")
	if envErr != nil {
		lg.Warn().Err(envErr).Msg("dotenv ignored")
	} else if len(exported) > 0 {
		lg.Debug().Strs("vars", exported).Msg("dotenv loaded")
	}
	if cfgErr != nil {
		lg.Warn().Err(cfgErr).Msg("using default settings")
	}
	if logErr != nil {
		lg.Warn().Err(logErr).Str("file", cfg.Log.File).Msg("log file unavailable")
	}

	def, err := court.Load(cfg.Court.Path)
	if err != nil {
		lg.Warn().Err(err).Str("path", cfg.Court.Path).Msg("using default court")
		def = court.Default()
	}

	backend, err := editor.OpenBackend(cfg.Storage)
	if err != nil {
		lg.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("storage unavailable, plays will not outlive this session")
		mem, memErr := sqlitekv.Open("")
		if memErr != nil {
			lg.Fatal().Err(memErr).Msg("in-memory storage")
		}
		backend = mem
	}

	ed := editor.New(editor.Options{
		Config:    cfg,
		ConfigDir: config.DefaultDir,
		Court:     def,
		Log:       log,
		Backend:   backend,
	})
	defer func() {
		if err := ed.Close(); err != nil {
			lg.Warn().Err(err).Msg("shutdown")
		}
	}()

	graphics.Run(graphics.Window{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      "Playboard",
		Background: scene.Background(),
		Setup:      ed.LoadFont,
	}, ed.Update, ed.Draw, ed.Release)
}
