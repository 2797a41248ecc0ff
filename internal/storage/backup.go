package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// GetBackupPath returns the path to a backup of the log at storagePath with
// the given rotation number (timelog.txt.bak.N). Lower numbers are more
// recent; .bak.1 is the latest backup.
func GetBackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It renames .bak.1 -> .bak.2, .bak.2 -> .bak.3, and deletes the oldest .bak.3
// if it exists. Missing files are not an error.
func rotateBackups(storagePath string) error {
	if err := os.Remove(GetBackupPath(storagePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(GetBackupPath(storagePath, i), GetBackupPath(storagePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup copies the log to .bak.1 after rotating older backups.
// It is taken before the log is handed to an external editor, the only
// operation that rewrites existing lines.
// If the log doesn't exist yet, no backup is created and no error is returned.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}

	sourceFile, err := os.Open(storagePath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(GetBackupPath(storagePath, 1))
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1 to MaxBackupCount)
	Path   string // The full path to the backup file
}

// ListBackups returns the existing backups of the log, most recent first.
func ListBackups(storagePath string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		path := GetBackupPath(storagePath, i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: path})
		}
	}
	return backups
}
