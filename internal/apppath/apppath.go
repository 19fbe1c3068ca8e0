// Package apppath resolves where papyru2 keeps its configuration, notes,
// and logs.
//
// The application home is chosen by a fixed priority: an explicit CLI
// override, the PAPYRU2_HOME environment variable, a portable layout
// detected around the executable, a development checkout, and finally the
// installed per-user directory. Resolution always creates the standard
// subdirectory layout so callers never have to handle a half-built home.
package apppath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ddbaker/papyru2/internal/errors"
)

const (
	// AppName is the application name used for the installed home directory.
	AppName = "papyru2"
	// HomeEnv is the environment variable that overrides the application home.
	HomeEnv = "PAPYRU2_HOME"
	// PortableMarkerFile marks a directory as a portable application home.
	PortableMarkerFile = "papyru2.portable"
)

// Mode identifies how the application home was resolved.
type Mode int

const (
	// ModeEnvOverride means PAPYRU2_HOME selected the home.
	ModeEnvOverride Mode = iota
	// ModePortable means the home was detected around the executable.
	ModePortable
	// ModeDev means the executable sits in a development checkout.
	ModeDev
	// ModeInstalled means the per-user fallback under the OS home directory.
	ModeInstalled
)

// Reason returns a short identifier for logging why this mode was chosen.
func (m Mode) Reason() string {
	switch m {
	case ModeEnvOverride:
		return "env_override"
	case ModePortable:
		return "portable_marker_or_layout"
	case ModeDev:
		return "dev_checkout_layout"
	case ModeInstalled:
		return "installed_home_fallback"
	default:
		return "unknown"
	}
}

// Override forces a resolution mode from the command line.
type Override int

const (
	// OverrideNone lets automatic detection run.
	OverrideNone Override = iota
	// OverridePortable forces the portable layout around the executable.
	OverridePortable
	// OverrideInstalled forces the per-user installed home.
	OverrideInstalled
)

// Paths holds the resolved application directory layout.
type Paths struct {
	Mode            Mode
	AppHome         string
	ConfDir         string
	DataDir         string
	UserDocumentDir string
	LogDir          string
	BinDir          string
}

// Resolve determines the application home for the current process and
// creates the directory layout.
func Resolve(override Override) (*Paths, error) {
	exePath, err := executablePath()
	if err != nil {
		return nil, err
	}
	return resolveFromInputs(os.Getenv(HomeEnv), exePath, osHomeDir(), override)
}

// resolveFromInputs is the testable core of Resolve. envHome and userHome
// may be empty when unavailable.
func resolveFromInputs(envHome, exePath, userHome string, override Override) (*Paths, error) {
	exeDir := filepath.Dir(exePath)
	if exeDir == "" || exeDir == exePath {
		return nil, errors.NewValidationError("failed to resolve executable directory").
			WithField("exe_path").
			WithValue(exePath)
	}

	switch override {
	case OverridePortable:
		return buildPaths(ModePortable, filepath.Dir(exeDir))
	case OverrideInstalled:
		home, err := installedAppHome(userHome)
		if err != nil {
			return nil, err
		}
		return buildPaths(ModeInstalled, home)
	}

	if envHome != "" {
		return buildPaths(ModeEnvOverride, envHome)
	}

	if home, ok := detectPortableAppHome(exeDir); ok {
		return buildPaths(ModePortable, home)
	}

	if home, ok := detectDevAppHome(exeDir); ok {
		return buildPaths(ModeDev, home)
	}

	home, err := installedAppHome(userHome)
	if err != nil {
		return nil, err
	}
	return buildPaths(ModeInstalled, home)
}

func buildPaths(mode Mode, appHome string) (*Paths, error) {
	paths := FromHome(mode, appHome)
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}
	return paths, nil
}

// FromHome lays out the standard directories under appHome without
// touching the filesystem.
func FromHome(mode Mode, appHome string) *Paths {
	dataDir := filepath.Join(appHome, "data")
	return &Paths{
		Mode:            mode,
		AppHome:         appHome,
		ConfDir:         filepath.Join(appHome, "conf"),
		DataDir:         dataDir,
		UserDocumentDir: filepath.Join(dataDir, "user_document"),
		LogDir:          filepath.Join(appHome, "log"),
		BinDir:          filepath.Join(appHome, "bin"),
	}
}

// EnsureDirs creates the full directory layout. Safe to call repeatedly.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{
		p.AppHome,
		p.ConfDir,
		p.DataDir,
		p.UserDocumentDir,
		p.LogDir,
		p.BinDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create app directory %s", dir)
		}
	}
	return nil
}

// ConfigFilePath returns the path of a file inside the conf directory.
func (p *Paths) ConfigFilePath(fileName string) string {
	return filepath.Join(p.ConfDir, fileName)
}

// LogFilePath returns the path of a file inside the log directory.
func (p *Paths) LogFilePath(fileName string) string {
	return filepath.Join(p.LogDir, fileName)
}

func executablePath() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "resolve executable path")
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		return resolved, nil
	}
	return exePath, nil
}

// detectPortableAppHome reports the parent of a bin directory as the
// application home when it carries the portable marker, or a markerless
// layout with conf, data, and log all present.
func detectPortableAppHome(exeDir string) (string, bool) {
	if !strings.EqualFold(filepath.Base(exeDir), "bin") {
		return "", false
	}

	appHome := filepath.Dir(exeDir)
	if isFile(filepath.Join(appHome, PortableMarkerFile)) {
		return appHome, true
	}

	// Markerless fallback still requires a strong, deterministic layout signal.
	if isDir(filepath.Join(appHome, "conf")) &&
		isDir(filepath.Join(appHome, "data")) &&
		isDir(filepath.Join(appHome, "log")) {
		return appHome, true
	}
	return "", false
}

// detectDevAppHome treats the directory of a binary built in place at the
// root of a module checkout as the application home.
func detectDevAppHome(exeDir string) (string, bool) {
	if isFile(filepath.Join(exeDir, "go.mod")) {
		return exeDir, true
	}
	return "", false
}

func installedAppHome(userHome string) (string, error) {
	if userHome == "" {
		return "", errors.New("failed to resolve user home directory for installed fallback")
	}
	return filepath.Join(userHome, "."+AppName), nil
}

func osHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
