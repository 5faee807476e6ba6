package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const (
	// Section is the only INI section the store reads or writes.
	Section = "user_options"

	// KeyBasePath stores the last used base directory.
	KeyBasePath = "top"
)

// Warning texts logged by Load.
const (
	WarnFileNotFound = "Configuration file not found."
	WarnParseError   = "Configuration file parsing error."
	warnKeyNotFound  = "Requested value not found in the configuration file. Default value is used instead: %s."
)

// errMissingSectionHeader is returned for a file whose first entry is not
// a [section] line. ini.v1 would silently file such keys under DEFAULT.
var errMissingSectionHeader = errors.New("file contains no section headers")

// loadOptions controls how settings files are parsed.
//
// InsensitiveKeys lowercases key names, so "TOP" and "top" are the same
// key, while section names stay case-sensitive ("DEFAULT" is special,
// "default" is not). IgnoreInlineComment keeps '#' and ';' inside values,
// which matters for directory names such as "klient#1".
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:     true,
	IgnoreInlineComment: true,
}

// Store reads and writes the settings file.
//
// The file holds a single value: the base directory of the last successful
// order. Reading never fails; every problem is logged as a warning and
// masked by the default. Writing replaces the whole file.
type Store struct {
	// fs is the filesystem the settings file lives on.
	fs billy.Filesystem

	// path is the absolute location of the settings file on fs.
	path string

	// defaultBase is returned by Load when no stored value is usable.
	defaultBase string

	// log receives the fallback warnings of Load and the debug entry of Save.
	log logrus.FieldLogger
}

// NewStore returns a Store for the settings file at path on fs.
// defaultBase is returned by Load whenever no stored value is available,
// normally the user's home directory.
func NewStore(fs billy.Filesystem, path, defaultBase string, log logrus.FieldLogger) *Store {
	return &Store{fs: fs, path: path, defaultBase: defaultBase, log: log}
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Default returns the fallback base directory.
func (s *Store) Default() string {
	return s.defaultBase
}

// Load returns the stored base directory, or the default when the file is
// missing, unreadable, unparsable or lacks the key. Each fallback step is
// logged as a warning, so a missing file yields two warnings: one for the
// file and one for the key.
func (s *Store) Load() string {
	log := s.log.WithField("file", s.path)

	// A nil cfg has already been reported; it still falls through to the
	// key warning below.
	if cfg := s.read(log); cfg != nil {
		if value, ok := lookup(cfg); ok {
			return value
		}
	}

	log.Warnf(warnKeyNotFound, s.defaultBase)
	return s.defaultBase
}

// read parses the settings file. It returns nil after logging a warning
// when there is nothing usable to read.
func (s *Store) read(log logrus.FieldLogger) *ini.File {
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn(WarnFileNotFound)
		} else {
			// Unreadable files (permissions, a directory in the way) are
			// treated like malformed ones.
			log.WithError(err).Warn(WarnParseError)
		}
		return nil
	}

	if err := checkSectionHeader(data); err != nil {
		log.WithError(err).Warn(WarnParseError)
		return nil
	}

	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		log.WithError(err).Warn(WarnParseError)
		return nil
	}
	return cfg
}

// lookup finds the base directory in the user section. Keys of the DEFAULT
// section are inherited by the user section, but only when that section
// exists.
func lookup(cfg *ini.File) (string, bool) {
	sec, err := cfg.GetSection(Section)
	if err != nil {
		return "", false
	}
	if sec.HasKey(KeyBasePath) {
		return sec.Key(KeyBasePath).String(), true
	}

	def, err := cfg.GetSection(ini.DefaultSection)
	if err == nil && def.HasKey(KeyBasePath) {
		return def.Key(KeyBasePath).String(), true
	}
	return "", false
}

// checkSectionHeader rejects files whose first entry appears before any
// [section] line. Blank lines and full-line comments may precede the
// first header.
func checkSectionHeader(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			return nil
		}
		return fmt.Errorf("%w: %q", errMissingSectionHeader, line)
	}
	return scanner.Err()
}

// Save replaces the settings file with a single section holding basePath.
// Any other keys previously present are dropped. The containing directory
// is created first if needed.
func (s *Store) Save(basePath string) error {
	cfg := ini.Empty()
	sec, err := cfg.NewSection(Section)
	if err != nil {
		return fmt.Errorf("failed to build settings section: %w", err)
	}
	if _, err := sec.NewKey(KeyBasePath, basePath); err != nil {
		return fmt.Errorf("failed to build settings key: %w", err)
	}

	// The application directory normally exists already (the CLI creates
	// it at startup), but the store does not rely on that.
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Create truncates, so the file always holds exactly one section.
	f, err := s.fs.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to open settings file %s: %w", s.path, err)
	}

	if _, err := cfg.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write settings file %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close settings file %s: %w", s.path, err)
	}

	s.log.WithField("file", s.path).Debugf("Saved %s = %s", KeyBasePath, basePath)
	return nil
}
