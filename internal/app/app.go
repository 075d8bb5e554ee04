package app

import (
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/ivmaly/vted/internal/config"
	"github.com/ivmaly/vted/internal/editor"
	"github.com/ivmaly/vted/internal/logger"
)

// App is the top-level runtime for vted.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(os.Getenv("VTED_DEBUG") != ""); err != nil {
		return err
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg)
	if len(a.args) > 0 {
		path := a.args[0]
		if err := ed.OpenFile(path); err != nil {
			// A missing or unreadable file degrades to an empty buffer
			// carrying the name, so Ctrl-S still writes to it.
			logger.Warn("open failed", "path", path, "err", err)
			ed.Open(path, nil)
			ed.SetStatusMessage("ERR: could not open file: " + path)
		}
	}

	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				logger.Info("quit")
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}
		ed.Render(s)
	}
}
