// Command gridctl renders htmlgrid forms and tables from the command line and
// runs a demo server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	root := newRootCommand(logger, surveyPrompter{})
	if err := root.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("gridctl failed")
		os.Exit(1)
	}
}
