package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// defaultYAML is written on first run when no shipped default file is found
// next to the binary.
const defaultYAML = `app:
  addr: "127.0.0.1:8642"
  data_dir: ""

census:
  base_url: "https://api.census.gov/data/timeseries/bds"
  rate_per_sec: 1.0
  burst: 2
  timeout_seconds: 60
  api_key_account: ""

clean:
  on_malformed: "missing"

refresh:
  interval_hours: 8760
`

func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	// Copy defaultPath -> userPath; fall back to the built-in default when
	// the binary isn't run from the repo checkout.
	src, err := os.Open(defaultPath)
	if err != nil {
		if err := os.WriteFile(userPath, []byte(defaultYAML), 0o644); err != nil {
			return "", err
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
