//go:build !ebiten

package main

import (
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/gui"
)

func openWindow(cfg *config.Config, loop *app.Loop) error {
	w, err := gui.Open("sandfall", cfg.WindowSize())
	if err != nil {
		return err
	}
	defer w.Close()
	return loop.Run(w)
}
