package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/eventlog"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/notify"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/power"
)

var (
	conf config.Config
	mon  *Monitor
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/status", getStatus)
	router.GET("/batteries", getBatteries)
	router.GET("/plugged", getPlugged)
	router.GET("/config", getConfig)
	router.GET("/battery-info", getBatteryInfo)
	router.GET("/version", getVersion)
	router.PUT("/latches/reset", resetLatches)

	return router
}

// Run starts the monitor daemon: device detection, the poll loop, and
// the status API on a unix socket. It blocks until SIGINT or SIGTERM.
func Run(cfg config.Config, unixSocketPath string) error {
	conf = cfg
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	events := eventlog.New(conf.LogPath(), conf.LogFileDisabled())
	source := power.NewDefaultChain()
	notifier := notify.NewDispatcher()

	m, err := NewMonitor(conf, source, notifier, events)
	if err != nil {
		return err
	}
	mon = m
	events.Printf("monitoring %d batteries and %d adapters", len(m.batteries), len(m.adapters))

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: setupRoutes(),
	}

	// A stale socket from a crashed run would block the listener.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	go func() {
		logrus.Debugln("poll loop starts")

		m.loop()

		logrus.Errorf("poll loop exited unexpectedly")
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
