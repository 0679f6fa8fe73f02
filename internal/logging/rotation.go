package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const filePrefix = "toasts_"

// rotate keeps at most maxFiles "toasts_*.log" files in dir, removing the
// oldest by modification time.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type logFile struct {
		path  string
		mtime int64
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		var mtime int64
		if info, err := entry.Info(); err == nil {
			mtime = info.ModTime().UnixNano()
		}
		files = append(files, logFile{path: filepath.Join(dir, name), mtime: mtime})
	}
	if len(files) <= maxFiles {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].mtime != files[j].mtime {
			return files[i].mtime < files[j].mtime
		}
		return files[i].path < files[j].path
	})
	for _, f := range files[:len(files)-maxFiles] {
		os.Remove(f.path)
	}
	return nil
}
