package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/brushmarkers/pkg/app"
	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/game"
	"github.com/decker502/brushmarkers/pkg/logging"
	"github.com/decker502/brushmarkers/pkg/storage"
)

var (
	configPath = flag.String("config", "", "YAML 配置文件路径（为空时使用默认配置）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	backend    = flag.String("backend", "", "覆盖存储后端：gdata / sqlite / memory")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "brushmarkers: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadPluginConfig(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := logging.NewLogger(cfg.Log.Level, *verbose, nil)

	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}()

	settings := game.NewSettingsManager(storage.OpenGdata(cfg.Storage.AppName, logger), logger)

	gameApp, err := app.NewApp(app.Config{
		Plugin:   cfg,
		Store:    store,
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("演示宿主初始化失败: %w", err)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Brush Markers")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(gameApp)
}
