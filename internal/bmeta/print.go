package bmeta

import "github.com/sirupsen/logrus"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Meta версия, дата и комит сборки.
type Meta struct {
	Version string
	Date    string
	Commit  string
}

// New подставляет N/A вместо незаданных значений.
func New(version, date, commit string) Meta {
	return Meta{
		Version: defaultIfEmpty(version),
		Date:    defaultIfEmpty(date),
		Commit:  defaultIfEmpty(commit),
	}
}

// Fields поля для логгера.
func (m Meta) Fields() logrus.Fields {
	return logrus.Fields{
		"build_version": m.Version,
		"build_date":    m.Date,
		"build_commit":  m.Commit,
	}
}

// Print пишет метаданные сборки в лог.
func Print(logger logrus.FieldLogger, version, date, commit string) {
	logger.WithFields(New(version, date, commit).Fields()).Info("Build info")
}

func defaultIfEmpty(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
