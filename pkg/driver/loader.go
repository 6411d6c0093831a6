package driver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Source is a program read from disk.
type Source struct {
	Path   string
	Target string // empty when loaded directly from a path
	Commit string // set for git targets
	Text   string
}

// Loader resolves program files and config targets into Sources.
type Loader struct {
	CacheDir string
	Log      logrus.FieldLogger
}

// NewLoader returns a loader fetching git targets into cacheDir.
func NewLoader(cacheDir string, log logrus.FieldLogger) *Loader {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	return &Loader{CacheDir: cacheDir, Log: log}
}

// Load reads the program at path.
func (l *Loader) Load(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read program %s", path)
	}
	l.Log.WithFields(logrus.Fields{"path": absPath, "bytes": len(data)}).Debug("loaded source")
	return &Source{Path: absPath, Text: string(data)}, nil
}

// LoadTarget resolves a named target of cfg, fetching it first when it comes
// from git. An empty name selects the default target.
func (l *Loader) LoadTarget(ctx context.Context, cfg *Config, name string) (*Source, error) {
	var target *TargetSpec
	if strings.TrimSpace(name) == "" {
		t, err := cfg.DefaultTarget()
		if err != nil {
			return nil, err
		}
		target = t
	} else {
		t, ok := cfg.FindTarget(name)
		if !ok {
			return nil, errors.Errorf("config %s: unknown target %q", cfg.Path, name)
		}
		target = t
	}

	log := l.Log.WithField("target", target.Name)
	if !target.IsGit() {
		path := target.Main
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dir, path)
		}
		log.WithField("path", path).Debug("resolved local target")
		src, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		src.Target = target.Name
		return src, nil
	}

	src, err := l.fetchTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"commit": src.Commit, "path": src.Path}).Info("resolved git target")
	return src, nil
}

// Fetch clones or refreshes a git target without reading its program.
func (l *Loader) Fetch(ctx context.Context, target *TargetSpec) (string, string, error) {
	if l.CacheDir == "" {
		return "", "", errors.New("no cache directory configured")
	}
	l.Log.WithFields(logrus.Fields{"target": target.Name, "url": target.Git}).Info("fetching")
	return FetchGitSource(ctx, l.CacheDir, target.Name, target)
}

func (l *Loader) fetchTarget(ctx context.Context, target *TargetSpec) (*Source, error) {
	dir, commit, err := l.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, filepath.FromSlash(target.Main))
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errors.Errorf("target %q: main %q escapes the repository", target.Name, target.Main)
	}
	src, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	src.Target = target.Name
	src.Commit = commit
	return src, nil
}
