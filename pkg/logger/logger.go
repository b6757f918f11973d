package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的、配置好的 logrus 实例
// 在 InitLogger 之前就可以用，输出到控制台
var Log = logrus.New()

// InitLogger 初始化全局的Logger实例
// level 取 logrus 的级别名(debug/info/warn...)，file 为空时只输出到控制台
func InitLogger(level, file string) error {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		// 日志将同时打印在控制台和文件里
		out = io.MultiWriter(os.Stdout, f)
	}
	Log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	return nil
}
