//go:build notray

package daemon

import (
	"errors"

	"go.uber.org/zap"
)

// TrayApp represents system tray application (stub for builds without tray support)
type TrayApp struct {
	logger *zap.Logger
}

// NewTrayApp creates a new system tray application (not supported in this build)
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return nil, errors.New("system tray support was not compiled in (notray build tag)")
}

// Run does nothing without tray support
func (t *TrayApp) Run() {
}

// Stop does nothing without tray support
func (t *TrayApp) Stop() {
}
