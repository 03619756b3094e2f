// Package main is the sensor-pd module entrypoint. It serves the pdetect sensor model to a
// viam-server.
package main

import (
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/module"
	"go.viam.com/rdk/resource"

	"github.com/dl-org/sensor-pd/pdetect"
)

func main() {
	module.ModularMain(resource.APIModel{API: sensor.API, Model: pdetect.Model})
}
