package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix = "wardrobe-backup-"
	backupExt    = ".json"
	backupLayout = "20060102-150405"
)

// ErrInvalidName возвращается для имён, выходящих за пределы каталога бэкапов.
var ErrInvalidName = errors.New("invalid backup name")

// BackupInfo описывает файл бэкапа.
type BackupInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// BackupFSStore: файловое хранилище документов экспорта.
type BackupFSStore struct {
	dir string
}

// NewBackupFSStore создаёт хранилище в каталоге dir (каталог создаётся при первой записи).
func NewBackupFSStore(dir string) *BackupFSStore {
	return &BackupFSStore{dir: dir}
}

// Dir возвращает каталог бэкапов.
func (s *BackupFSStore) Dir() string { return s.dir }

// BackupName формирует имя файла бэкапа для момента t.
func BackupName(t time.Time) string {
	return backupPrefix + t.UTC().Format(backupLayout) + backupExt
}

func (s *BackupFSStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save атомарно записывает бэкап: сначала во временный файл, затем rename.
func (s *BackupFSStore) Save(name string, data []byte) (string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		return "", err
	}
	// при любой ошибке убираем временный файл
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return "", err
	}
	return p, nil
}

// Load читает бэкап по имени.
func (s *BackupFSStore) Load(name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.New("empty backup file")
	}
	return b, nil
}

// List возвращает бэкапы, новые первыми. Отсутствующий каталог: пустой список.
func (s *BackupFSStore) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var res []BackupInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		res = append(res, BackupInfo{Name: name, Size: fi.Size(), ModTime: fi.ModTime()})
	}
	// имена содержат метку времени, сортировка по имени совпадает с хронологией
	sort.Slice(res, func(i, j int) bool { return res[i].Name > res[j].Name })
	return res, nil
}

// Latest возвращает самый свежий бэкап; ok=false если бэкапов нет.
func (s *BackupFSStore) Latest() (BackupInfo, bool, error) {
	list, err := s.List()
	if err != nil || len(list) == 0 {
		return BackupInfo{}, false, err
	}
	return list[0], true, nil
}

// Prune оставляет keep самых свежих бэкапов и возвращает число удалённых.
func (s *BackupFSStore) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	list, err := s.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, b := range list[min(keep, len(list)):] {
		if err := os.Remove(filepath.Join(s.dir, b.Name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
