package cli

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"
)

// logTimeFormat matches the "YYYY-MM-DD HH:MM:SS" stamps of the log file.
const logTimeFormat = "2006-01-02 15:04:05"

// newLogger returns a logger writing to logPath, which is truncated on
// every start. With verbose the output is mirrored to stderr and debug
// entries are kept. If the log file cannot be opened the logger falls back
// to stderr alone; the returned closer is nil in that case.
func newLogger(fs billy.Filesystem, logPath string, verbose bool, stderr io.Writer) (*logrus.Logger, io.Closer) {
	// Plain text with full timestamps; colors are disabled because the
	// primary destination is a file.
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: logTimeFormat,
		DisableColors:   true,
	})
	// Info is the default level; --verbose adds the debug entries written
	// through VerboseLog.
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// O_TRUNC: the log only covers the current run.
	f, err := fs.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		// A missing log file must not stop the command.
		log.SetOutput(stderr)
		log.WithError(err).Warn("Log file unavailable, logging to stderr")
		return log, nil
	}

	// With --verbose every entry goes to both the file and stderr.
	if verbose {
		log.SetOutput(io.MultiWriter(f, stderr))
	} else {
		log.SetOutput(f)
	}
	return log, f
}
