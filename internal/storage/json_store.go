package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/errors"
	"tasklog/internal/logging"
)

const dayFileExt = ".json"

// JSONStore keeps each day in its own file, <dir>/<YYYY-MM-DD>.json.
//
// Files are replaced atomically through a temporary file and os.Rename, so a
// crash mid-write leaves the previous version intact.
type JSONStore struct {
	dir string
}

// NewJSONStore creates a store rooted at dir. The directory is created on
// the first Save.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Path returns the file that holds date.
func (s *JSONStore) Path(date calendar.Date) string {
	return filepath.Join(s.dir, date.String()+dayFileExt)
}

// Load reads the day file for date.
func (s *JSONStore) Load(_ context.Context, date calendar.Date) (*domain.TaskManager, error) {
	path := s.Path(date)
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		logging.Debugf("json store: no file for %s\n", date)
		return domain.NewTaskManager(), nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "read day file "+path)
	}

	m, err := domain.DecodeTaskManager(data)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	logging.Debugf("json store: loaded %s\n", path)
	return m, nil
}

// Save writes m as indented JSON with a trailing newline.
func (s *JSONStore) Save(_ context.Context, date calendar.Date, m *domain.TaskManager) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeDatabase, "encode day "+date.String())
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.WrapError(err, errors.ErrorTypeDatabase, "create data directory "+s.dir)
	}
	if err := writeFileAtomic(s.Path(date), data); err != nil {
		return errors.WrapError(err, errors.ErrorTypeDatabase, "write day file "+s.Path(date))
	}
	logging.Debugf("json store: saved %s\n", s.Path(date))
	return nil
}

// Days lists the day files in the data directory. Files whose names are not
// dates are ignored.
func (s *JSONStore) Days(_ context.Context) ([]calendar.Date, error) {
	entries, err := os.ReadDir(s.dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		return []calendar.Date{}, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "list data directory "+s.dir)
	}

	days := make([]calendar.Date, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, dayFileExt) {
			continue
		}
		date, err := calendar.ParseDate(strings.TrimSuffix(name, dayFileExt))
		if err != nil {
			continue
		}
		days = append(days, date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

// Close is a no-op; files are not held open between calls.
func (s *JSONStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
