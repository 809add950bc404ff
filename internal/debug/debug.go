// Package debug holds the info-providing utilities enabled through the
// debugging config section.
package debug

import (
	"fmt"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var frameDumper = spew.ConfigState{Indent: "  ", DisableMethods: true}

// DumpFrame logs a full dump of one wire frame. direction is "send" or
// "recv".
func DumpFrame(logger *logrus.Logger, direction string, frame []byte) {
	logger.Debugf("%s frame (%d bytes):\n%s", direction, len(frame), frameDumper.Sdump(frame))
}

// StartMetricsServer exposes the prometheus registry over HTTP on the
// given port. Failures only cost us metrics, so they are logged and
// swallowed.
func StartMetricsServer(logger *logrus.Logger, port int) {
	if port == 0 {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Infof("serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warnf("metrics server exited: %v", err)
		}
	}()
}
