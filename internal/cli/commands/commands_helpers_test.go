package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Wardrobe/internal/config"
)

// withTempConfig направляет базу, настройки и бэкапы во временный каталог,
// чтобы артефакты тестов не попадали в пользовательский профиль.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:     dir,
		DBPath:      filepath.Join(dir, "wardrobe.db"),
		SettingsDir: filepath.Join(dir, "settings"),
		BackupDir:   filepath.Join(dir, "backups"),
		ImageMaxMB:  1,
		LogLevel:    "error",
	}
}

// run выполняет команду через Dispatch и возвращает вывод и код выхода
func run(t *testing.T, cfg *config.Config, args ...string) (string, int) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return out, code
}

// writeImage создаёт файл с «фотографией»
func writeImage(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return p
}

// valueAfter возвращает первое слово после prefix в выводе
func valueAfter(t *testing.T, out, prefix string) string {
	t.Helper()
	i := strings.Index(out, prefix)
	if i < 0 {
		t.Fatalf("%q not found in output: %s", prefix, out)
	}
	fields := strings.Fields(out[i+len(prefix):])
	if len(fields) == 0 {
		t.Fatalf("no value after %q in output: %s", prefix, out)
	}
	return strings.TrimSuffix(fields[0], ":")
}

// addItem добавляет вещь командой item-add и возвращает её id
func addItem(t *testing.T, cfg *config.Config, category string) string {
	t.Helper()
	out, code := run(t, cfg, "item-add", category, writeImage(t, "img-"+category))
	if code != 0 {
		t.Fatalf("item-add %s: code %d, output: %s", category, code, out)
	}
	return valueAfter(t, out, "id:")
}
