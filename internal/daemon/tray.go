//go:build !notray

package daemon

import (
	"sync"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
	once   sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(trayIcon())
	systray.SetTitle("WD")
	systray.SetTooltip(t.daemon.StatusText())

	// One item per predefined range; titles follow the day via OnDayChange
	ranges := t.daemon.ctrl.Ranges()
	items := make([]*systray.MenuItem, len(ranges))
	for i, r := range ranges {
		items[i] = systray.AddMenuItem(r.Label, r.Range.String())
		go t.watch(i, items[i])
	}
	t.daemon.OnDayChange(func(resolved []calendar.ResolvedRange) {
		for i, r := range resolved {
			if i < len(items) {
				items[i].SetTooltip(r.Range.String())
			}
		}
	})

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// day rollover loop in background
	go t.daemon.run(defaultCheckInterval)

	go func() {
		select {
		case <-mQuit.ClickedCh:
			t.logger.Info("Quit clicked from tray")
			t.daemon.Stop()
			systray.Quit()
		case <-t.quit:
			systray.Quit()
		}
	}()
}

func (t *TrayApp) watch(i int, item *systray.MenuItem) {
	for {
		select {
		case <-item.ClickedCh:
			t.logger.Info("Range clicked from tray", zap.Int("index", i))
			if _, err := t.daemon.Select(i); err == nil {
				systray.SetTooltip(t.daemon.StatusText())
			}
		case <-t.quit:
			return
		}
	}
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.once.Do(func() { close(t.quit) })
}
