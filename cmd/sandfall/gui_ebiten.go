//go:build ebiten

package main

import (
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/ebitenui"
)

func openWindow(cfg *config.Config, loop *app.Loop) error {
	return ebitenui.Run("sandfall", loop, cfg.WindowSize())
}
