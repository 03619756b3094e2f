// Package main is a CLI that inspects the people detection setup of a running robot.
package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils"
	"go.viam.com/utils/rpc"

	"github.com/dl-org/sensor-pd/inspect"
)

const (
	flagAddress       = "address"
	flagAPIKey        = "api-key"
	flagAPIKeyID      = "api-key-id"
	flagDebug         = "debug"
	flagCamera        = "camera"
	flagModel         = "mlmodel"
	flagDetector      = "detector"
	flagLabel         = "label"
	flagMinConfidence = "min-confidence"
	flagSaveFrame     = "save-frame"
	flagSensor        = "sensor"
)

// machine is a robot connection that can be inspected and closed.
type machine interface {
	inspect.Machine
	Close(ctx context.Context) error
}

type dialFunc func(ctx context.Context, address, apiKeyID, apiKey string, logger logging.Logger) (machine, error)

func dialRobot(ctx context.Context, address, apiKeyID, apiKey string, logger logging.Logger) (machine, error) {
	return client.New(ctx, address, logger,
		client.WithDialOptions(rpc.WithEntityCredentials(apiKeyID, rpc.Credentials{
			Type:    rpc.CredentialsTypeAPIKey,
			Payload: apiKey,
		})),
	)
}

func main() {
	utils.ContextualMain(mainWithArgs, logging.NewLogger("inspect"))
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	return newApp(logger, dialRobot).RunContext(ctx, args)
}

func newApp(logger logging.Logger, dial dialFunc) *cli.App {
	withMachine := func(c *cli.Context, fn func(m machine) error) (err error) {
		if c.Bool(flagDebug) {
			logger.SetLevel(logging.DEBUG)
		}
		address := c.String(flagAddress)
		logger.Debugf("connecting to %s", address)
		m, err := dial(c.Context, address, c.String(flagAPIKeyID), c.String(flagAPIKey), logger)
		if err != nil {
			return errors.Wrapf(err, "could not connect to %s", address)
		}
		defer func() {
			err = multierr.Combine(err, m.Close(c.Context))
		}()
		return fn(m)
	}

	defaults := inspect.DefaultOptions()

	return &cli.App{
		Name:  "inspect",
		Usage: "inspect the camera, model and people detector of a robot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagAddress,
				Usage:    "robot address",
				EnvVars:  []string{"VIAM_ROBOT_ADDRESS"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagAPIKey,
				Usage:    "API key used to dial the robot",
				EnvVars:  []string{"VIAM_API_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagAPIKeyID,
				Usage:    "ID of the API key",
				EnvVars:  []string{"VIAM_API_KEY_ID"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "detections",
				Usage: "list resources, grab a frame, print model metadata and filtered detections",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagCamera, Value: defaults.CameraName, Usage: "camera to pull a frame from and detect on"},
					&cli.StringFlag{Name: flagModel, Value: defaults.ModelName, Usage: "ML model service to read metadata from"},
					&cli.StringFlag{Name: flagDetector, Value: defaults.DetectorName, Usage: "vision service to query"},
					&cli.StringFlag{Name: flagLabel, Value: defaults.Filter.Label, Usage: "class label to keep, case-insensitive"},
					&cli.Float64Flag{
						Name:  flagMinConfidence,
						Value: defaults.Filter.MinConfidence,
						Usage: "keep detections scoring strictly above this",
					},
					&cli.StringFlag{Name: flagSaveFrame, Usage: "write the frame to this path"},
				},
				Action: func(c *cli.Context) error {
					opts := inspect.Options{
						CameraName:   c.String(flagCamera),
						ModelName:    c.String(flagModel),
						DetectorName: c.String(flagDetector),
						Filter: inspect.Filter{
							Label:         c.String(flagLabel),
							MinConfidence: c.Float64(flagMinConfidence),
						},
						SaveFramePath: c.String(flagSaveFrame),
					}
					return withMachine(c, func(m machine) error {
						report, err := inspect.Run(c.Context, m, opts, logger)
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, report.String())
						return nil
					})
				},
			},
			{
				Name:  "readings",
				Usage: "print the readings of a pdetect sensor",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagSensor, Required: true, Usage: "sensor to read"},
				},
				Action: func(c *cli.Context) error {
					return withMachine(c, func(m machine) error {
						readings, err := inspect.ReadSensor(c.Context, m, c.String(flagSensor))
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, inspect.ReadingsTable(readings))
						return nil
					})
				},
			},
		},
	}
}
