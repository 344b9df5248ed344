package main

import (
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/tinyurl/internal/app"
	"github.com/fsdevblog/tinyurl/internal/bmeta"
	"github.com/fsdevblog/tinyurl/internal/config"
)

// Заполняются при сборке через -ldflags "-X main.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	bmeta.Print(a.Logger, buildVersion, buildDate, buildCommit)
	a.Logger.WithFields(logrus.Fields{
		"address": appConf.ServerAddress,
		"storage": appConf.DBType,
		"cache":   appConf.RedisAddr != "",
	}).Info("Starting server")
	if err := a.Run(); err != nil {
		a.Logger.WithError(err).Fatal("server stopped with error")
	}
}
