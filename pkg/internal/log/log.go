// Package log writes leveled messages to stderr, tagged with the calling
// file and line. Debug messages are only written when config.Debug is set.
package log

import (
	"fmt"
	"io"
	glog "log"
	"os"

	"github.com/kamrankamilli/gsflood/pkg/config"
)

const stdFlags = glog.Ldate | glog.Ltime | glog.Lshortfile

var (
	infoLogger    = glog.New(os.Stderr, "INFO: ", stdFlags)
	warningLogger = glog.New(os.Stderr, "WARNING: ", stdFlags)
	errorLogger   = glog.New(os.Stderr, "ERROR: ", stdFlags)
	debugLogger   = glog.New(os.Stderr, "DEBUG: ", stdFlags|glog.Lmicroseconds)
)

// SetOutput redirects every level to w.
func SetOutput(w io.Writer) {
	for _, l := range []*glog.Logger{infoLogger, warningLogger, errorLogger, debugLogger} {
		l.SetOutput(w)
	}
}

// output skips itself and the exported wrapper so Lshortfile names the
// caller of Info, Warningf and friends.
func output(l *glog.Logger, s string) { _ = l.Output(3, s) }

func Info(args ...any)               { output(infoLogger, fmt.Sprint(args...)) }
func Infof(f string, args ...any)    { output(infoLogger, fmt.Sprintf(f, args...)) }
func Warning(args ...any)            { output(warningLogger, fmt.Sprint(args...)) }
func Warningf(f string, args ...any) { output(warningLogger, fmt.Sprintf(f, args...)) }
func Error(args ...any)              { output(errorLogger, fmt.Sprint(args...)) }
func Errorf(f string, args ...any)   { output(errorLogger, fmt.Sprintf(f, args...)) }

func Debug(args ...any) {
	if config.Debug {
		output(debugLogger, fmt.Sprint(args...))
	}
}

func Debugf(f string, args ...any) {
	if config.Debug {
		output(debugLogger, fmt.Sprintf(f, args...))
	}
}
