package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// HomeEnv overrides the cache root returned by ResolveHome.
const HomeEnv = "WORDLANG_HOME"

// ResolveHome returns the directory holding fetched sources: $WORDLANG_HOME
// when set, otherwise ~/.wordlang.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", errors.Wrapf(err, "resolve %s %q", HomeEnv, home)
		}
		return abs, nil
	}
	userHome, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user home")
	}
	return filepath.Join(userHome, ".wordlang"), nil
}
