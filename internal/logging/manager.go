package logging

import (
	"fmt"

	"jobwatch/internal/config"
	"jobwatch/internal/logging/adapters"
)

// Manager manages the logging system initialization and configuration
type Manager struct {
	logger *MultiLogger
}

// NewManager creates a new logging manager
func NewManager() *Manager {
	return &Manager{logger: NewMultiLogger()}
}

// Initialize initializes the logging system from configuration
func (m *Manager) Initialize(cfg *config.Config) error {
	m.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	stdout := adapters.NewStdoutAdapter("stdout", cfg.Logging.Format)
	if err := m.logger.AddAdapter(stdout); err != nil {
		return fmt.Errorf("failed to add stdout adapter: %w", err)
	}

	if cfg.Logging.FilePath != "" {
		file, err := adapters.NewFileAdapter("file", cfg.Logging.FilePath, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to create file adapter: %w", err)
		}
		if err := m.logger.AddAdapter(file); err != nil {
			return fmt.Errorf("failed to add file adapter: %w", err)
		}
	}

	return nil
}

// GetLogger returns the initialized logger
func (m *Manager) GetLogger() Logger {
	return m.logger
}

// Close closes the logging system
func (m *Manager) Close() error {
	if m.logger != nil {
		return m.logger.Close()
	}
	return nil
}

// Global manager instance
var globalManager *Manager

// InitializeLogging initializes the global logging system
func InitializeLogging(cfg *config.Config) error {
	globalManager = NewManager()
	return globalManager.Initialize(cfg)
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	if globalManager == nil {
		// Fallback to a basic stdout logger if not initialized
		manager := NewManager()
		manager.logger.AddAdapter(adapters.NewStdoutAdapter("fallback_stdout", "text"))
		globalManager = manager
	}
	return globalManager.GetLogger()
}

// CloseLogging closes the global logging system
func CloseLogging() error {
	if globalManager != nil {
		return globalManager.Close()
	}
	return nil
}

// LogWithRunID creates a logger tagged with a scrape cycle's run ID
func LogWithRunID(runID string) Logger {
	return GetGlobalLogger().WithField("run_id", runID)
}
