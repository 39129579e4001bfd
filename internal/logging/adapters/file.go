package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging/types"
)

// FileAdapter appends entries to a file and rotates it by size or age
type FileAdapter struct {
	name        string
	config      FileConfig
	file        *os.File
	size        int64
	openedAt    time.Time
	mu          sync.Mutex
	timestamper func() time.Time
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath   string        `yaml:"file_path"`
	Format     string        `yaml:"format"`      // json or text
	MaxSize    int64         `yaml:"max_size"`    // bytes, 0 = unlimited
	MaxAge     time.Duration `yaml:"max_age"`     // 0 = never rotate by age
	MaxBackups int           `yaml:"max_backups"` // rotated files kept
	CreateDirs bool          `yaml:"create_dirs"`
}

func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.Format == "" {
		config.Format = "json"
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 5
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	a := &FileAdapter{name: name, config: config, timestamper: time.Now}
	if err := a.open(); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return a, nil
}

func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("log file %s is closed", a.config.FilePath)
	}

	if a.needsRotation() {
		if err := a.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	var line string
	var err error
	if strings.EqualFold(a.config.Format, "text") {
		line = formatText(entry, false)
	} else {
		line, err = formatJSON(entry)
	}
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	n, err := a.file.WriteString(line + "\n")
	a.size += int64(n)
	return err
}

func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("log file %s is closed", a.config.FilePath)
	}
	_, err := a.file.Stat()
	return err
}

func (a *FileAdapter) Name() string { return a.name }

func (a *FileAdapter) open() error {
	f, err := os.OpenFile(a.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	a.file = f
	a.size = info.Size()
	a.openedAt = a.timestamper()
	return nil
}

func (a *FileAdapter) needsRotation() bool {
	if a.config.MaxSize > 0 && a.size >= a.config.MaxSize {
		return true
	}
	return a.config.MaxAge > 0 && a.timestamper().Sub(a.openedAt) >= a.config.MaxAge
}

// rotate renames the current file to <path>.<timestamp> and prunes old backups
func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return err
	}

	backup := fmt.Sprintf("%s.%s", a.config.FilePath, a.timestamper().Format("20060102T150405.000000000"))
	if err := os.Rename(a.config.FilePath, backup); err != nil {
		return err
	}

	if err := a.open(); err != nil {
		return err
	}
	return a.pruneBackups()
}

func (a *FileAdapter) pruneBackups() error {
	matches, err := filepath.Glob(a.config.FilePath + ".*")
	if err != nil {
		return err
	}
	if len(matches) <= a.config.MaxBackups {
		return nil
	}

	// timestamp suffixes sort chronologically
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-a.config.MaxBackups] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}
