package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
	"github.com/trezcool/lms/services/files"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/inmem"
	"github.com/trezcool/lms/storage/jsonfile"
)

var isTerminalFunc = term.IsTerminal // mockable

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := core.NewConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	// set up logger
	logOut, closeLog, err := logOutput(conf)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("LMS", logOut, conf.Debug), conf)
	logger.Enable(conf.RollbarToken != "" && !conf.Debug)
	defer logger.Wait()

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// set up registry
	db, err := inmemdb.Open()
	if err != nil {
		logger.Error(fmt.Sprintf("opening registry: %v", err), err)
		return 1
	}
	svc := lms.NewService(inmemdb.NewLMSRepository(db), jsonfile.NewStore(), logger)

	// start shell
	sh := newShell(
		shellDeps{
			Conf:   conf,
			Logger: logger,
			Svc:    svc,
			Files:  files.NewManager(conf.DataDir),
		},
		os.Stdin,
		os.Stdout,
		!isTerminalFunc(int(os.Stdin.Fd())),
	)
	if err = sh.run(); err != nil {
		logger.Error(fmt.Sprintf("shell: %v", err), err)
		return 1
	}
	return 0
}

// logOutput picks where local logs go: the configured log file, stderr in debug mode, nowhere otherwise.
func logOutput(conf *core.Config) (io.Writer, func(), error) {
	switch {
	case conf.LogFile != "":
		f, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	case conf.Debug:
		return os.Stderr, func() {}, nil
	default:
		return io.Discard, func() {}, nil
	}
}
