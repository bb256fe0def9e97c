package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/internal/picker"
	"github.com/username/weekday-picker/pkg/dateutil"
)

// defaultCheckInterval is how often the day rollover is checked
const defaultCheckInterval = time.Minute

// Daemon is the background host of the picker: it exposes the predefined
// ranges (in the system tray when available) and re-resolves them when the
// day rolls over.
type Daemon struct {
	ctrl       *picker.Controller
	systemTray bool
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp

	mu         sync.Mutex
	lastDay    string           // day the ranges were last resolved for
	last       *picker.Emission // most recent selection
	selections int
	dayChanged []func([]calendar.ResolvedRange)
}

// New creates a daemon around ctrl
func New(ctrl *picker.Controller, systemTray bool, logger *zap.Logger) *Daemon {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		ctrl:       ctrl,
		systemTray: systemTray,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start runs the daemon until Stop, Quit in the tray, or SIGINT/SIGTERM
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.startWithoutTray()
		}
		d.trayApp = trayApp
		// blocks until Quit
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.startWithoutTray()
}

func (d *Daemon) startWithoutTray() error {
	d.logger.Info("Starting console mode")
	d.run(defaultCheckInterval)
	return nil
}

// run logs the catalog, then checks for a day change every interval
func (d *Daemon) run(interval time.Duration) {
	d.refresh()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case <-ticker.C:
			d.refresh()
		}
	}
}

// RunWithTimeout runs the console loop for at most timeout
func (d *Daemon) RunWithTimeout(timeout, interval time.Duration) error {
	d.logger.Info("Daemon started with timeout", zap.Duration("timeout", timeout))

	time.AfterFunc(timeout, d.Stop)
	d.run(interval)
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// OnDayChange registers fn to receive the freshly resolved ranges whenever
// the day rolls over, and once on start.
func (d *Daemon) OnDayChange(fn func([]calendar.ResolvedRange)) {
	d.mu.Lock()
	d.dayChanged = append(d.dayChanged, fn)
	d.mu.Unlock()
}

// refresh re-resolves the catalog when the controller's day differs from
// the last resolved one. It reports whether it did.
func (d *Daemon) refresh() bool {
	today := d.ctrl.Today()
	day := today.Format("2006-01-02")

	d.mu.Lock()
	if d.lastDay == day {
		d.mu.Unlock()
		return false
	}
	d.lastDay = day
	handlers := append(([]func([]calendar.ResolvedRange))(nil), d.dayChanged...)
	d.mu.Unlock()

	ranges := d.ctrl.Ranges()
	for _, r := range ranges {
		d.logger.Info("Predefined range",
			zap.String("label", r.Label),
			zap.String("start", dateutil.FormatDMY(r.Range.Start)),
			zap.String("end", dateutil.FormatDMY(r.Range.End)))
	}
	d.logger.Info("Predefined ranges resolved",
		zap.String("day", day),
		zap.Int("count", len(ranges)))

	for _, fn := range handlers {
		fn(ranges)
	}
	return true
}

// Select emits the i-th predefined range through the controller
func (d *Daemon) Select(i int) (picker.Emission, error) {
	em, err := d.ctrl.SelectPredefined(i)
	if err != nil {
		d.logger.Error("Failed to select range", zap.Int("index", i), zap.Error(err))
		return picker.Emission{}, err
	}

	d.mu.Lock()
	d.last = &em
	d.selections++
	d.mu.Unlock()

	d.logger.Info("Range selected",
		zap.String("label", em.Label),
		zap.Int("weekdays", len(em.Weekdays)),
		zap.Int("weekends", len(em.Weekends)))
	return em, nil
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := map[string]interface{}{
		"running":    d.ctx.Err() == nil,
		"day":        d.lastDay,
		"selections": d.selections,
		"ranges":     len(d.ctrl.Ranges()),
	}

	if d.last != nil {
		status["last"] = map[string]interface{}{
			"label":    d.last.Label,
			"range":    d.last.Range.String(),
			"weekdays": len(d.last.Weekdays),
			"weekends": len(d.last.Weekends),
		}
	}

	return status
}

// StatusText is the one-line summary shown as the tray tooltip
func (d *Daemon) StatusText() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.last == nil {
		return "Weekday picker: no range selected"
	}
	return fmt.Sprintf("%s (%s): %d weekdays, %d weekends",
		d.last.Label, d.last.Range, len(d.last.Weekdays), len(d.last.Weekends))
}
