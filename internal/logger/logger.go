package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup はlogrusを初期化し、ログの出力先を返す
// logFileが指定された場合は標準出力に加えてローテーションするファイルにも書き込む
func Setup(logFile, level string) io.Writer {
	var out io.Writer = os.Stdout
	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("⚠️ 不明なログレベル %q のためinfoを使用します", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return out
}
