package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName   = "big2fit"
	dbFileName   = "big2fit.db"
	dataFileName = "big2fit.json"
	backupDir    = "backups"
)

func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultDataFilePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dataFileName), nil
}

// BackupDirFor places backups next to the given store file.
func BackupDirFor(storePath string) string {
	return filepath.Join(filepath.Dir(storePath), backupDir)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
