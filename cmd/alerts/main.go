package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/cli"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cli.Execute()
}
