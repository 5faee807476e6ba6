package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"

	"github.com/banaszakw/dir-maker/internal/config"
	"github.com/banaszakw/dir-maker/internal/model"
)

// appEnv holds the process-wide collaborators shared by all subcommands.
//
// It is built once per command invocation in the root command's
// PersistentPreRunE, after flags are parsed, so --verbose is already known
// when the logger is configured.
type appEnv struct {
	// fs is rooted at "/" so absolute OS paths can be used unchanged.
	fs billy.Filesystem

	// paths locates the application directory, settings file and log file
	// under the user's home directory.
	paths config.Paths

	// log writes to the log file (and stderr with --verbose).
	log *logrus.Logger

	// store reads and writes the last used base directory.
	store *config.Store

	// logFile is closed by closeApp. Nil when logging fell back to stderr.
	logFile io.Closer
}

// app is set by setupApp before any subcommand runs.
var app *appEnv

// homeDir resolves the user's home directory. It reads $HOME on Unix, which
// lets tests point it at a temporary directory with t.Setenv.
var homeDir = os.UserHomeDir

// setupApp creates the application directory, opens the log file and
// builds the settings store.
func setupApp(stderr io.Writer) error {
	// Release a previous environment first; tests run many commands in one
	// process.
	closeApp()

	// Everything the tool persists lives under the home directory.
	home, err := homeDir()
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "failed to resolve home directory", err)
	}

	fs := osfs.New("/")
	paths := config.NewPaths(home)

	// The application directory holds both the log file and the settings
	// file, so it must exist before either is opened.
	if err := fs.MkdirAll(paths.AppDir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to create application directory %s", paths.AppDir), err)
	}

	// The log file is opened (and truncated) here, once per invocation.
	log, logFile := newLogger(fs, paths.LogFile, verbose, stderr)

	// The home directory doubles as the default base path, matching the
	// behavior on a first run with no settings file.
	app = &appEnv{
		fs:      fs,
		paths:   paths,
		log:     log,
		store:   config.NewStore(fs, paths.ConfigFile, home, log),
		logFile: logFile,
	}
	log.WithField("version", Version).Debug("Application started")
	return nil
}

// closeApp releases the log file. It is safe to call more than once.
func closeApp() {
	if app != nil && app.logFile != nil {
		_ = app.logFile.Close()
	}
	app = nil
}
