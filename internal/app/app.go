package app

import (
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/rowkit/vid/internal/config"
	"github.com/rowkit/vid/internal/editor"
	"github.com/rowkit/vid/internal/logger"
)

// App is the top-level runtime for vid.
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
		ed.OpenFile(a.args[0])
		logger.Info("opened file", "path", a.args[0], "rows", ed.Buffer().Len())
	}

	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
			ed.Invalidate()
		}
		ed.Render(s)
	}
}
