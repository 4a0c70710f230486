//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.brushmarkers -o build/android/brushmarkers.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/BrushMarkers.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/brushmarkers/pkg/app"
	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/game"
	"github.com/decker502/brushmarkers/pkg/logging"
	"github.com/decker502/brushmarkers/pkg/storage"
)

func init() {
	// 移动端没有配置文件，使用默认配置和 gdata 存储
	cfg := config.DefaultPluginConfig()
	logger := logging.NewLogger(cfg.Log.Level, true, nil)

	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("存储初始化失败")
	}

	gameApp, err := app.NewApp(app.Config{
		Plugin:   cfg,
		Store:    store,
		Settings: game.NewSettingsManager(storage.OpenGdata(cfg.Storage.AppName, logger), logger),
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("演示宿主初始化失败")
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
