package logging

import (
	"io"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/fitprogress/pkg"
)

const defaultMaxLogFileSizeMB = 50

type LoggerSetupParams struct {
	// Component is added to every entry as the "component" field, e.g. "service" or "sheets-sync".
	Component        string
	LogFileName      string
	LogFileMaxSizeMB int
	LogToStdout      bool
	// LogToStderr sends logs to stderr instead of stdout when no log file is set,
	// for commands that print their results to stdout.
	LogToStderr      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.Component != "" {
		logrus.AddHook(&componentHook{component: params.Component})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	out := logOutput(params)
	logrus.SetOutput(out)
}

func setupSentry(params LoggerSetupParams) {
	serverName := params.SentryServerName
	if serverName == "" && params.Component != "" {
		serverName = "fitprogress-" + params.Component
	}

	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       serverName,
	}); err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infof("sentry set up for [%s]", serverName)
}

// logOutput picks stdout (or stderr), a rotated log file, or both.
func logOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		if params.LogToStderr {
			return os.Stderr
		}
		return os.Stdout
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	maxSize := params.LogFileMaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxLogFileSizeMB
	}

	rotated := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   maxSize, // megabytes
		LocalTime: false,   // false -> use UTC
		Compress:  true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, rotated)
	}
	return rotated
}

func GetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return lvl
}

type componentHook struct {
	component string
}

func (h *componentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *componentHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["component"]; !ok {
		entry.Data["component"] = h.component
	}
	return nil
}
