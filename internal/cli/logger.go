package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	if os.Getenv("MEDIACTL_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log.WithField("run_id", uuid.NewString()[:8])
}
