package daemon

import (
	"net/http"

	"github.com/distatus/battery"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/version"
)

func getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, mon.Snapshot())
}

func getBatteries(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, mon.Snapshot().Batteries)
}

func getPlugged(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, mon.Snapshot().Plugged)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

// getBatteryInfo returns hardware detail (capacity, voltage, charge
// rate) read directly from the OS, independent of the poll loop.
func getBatteryInfo(c *gin.Context) {
	batteries, err := battery.GetAll()
	if err != nil && len(batteries) == 0 {
		logrus.Errorf("getBatteryInfo failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, batteries)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func resetLatches(c *gin.Context) {
	msg := mon.ResetLatches()
	logrus.Info(msg)
	c.IndentedJSON(http.StatusCreated, msg)
}
