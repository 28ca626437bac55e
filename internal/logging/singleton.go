package logging

import (
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// Init builds the process-wide logger. The previous instance, if any, is closed.
func Init(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = logger
	return nil
}

// Get returns the process-wide logger.
// Before Init it falls back to an info-level stdout logger.
func Get() *Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance, _ = NewLogger(&Config{Level: LevelInfo})
	}
	return instance
}
