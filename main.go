/*
Prism opens a window with a single lit 3D shape and a bar of buttons to
switch between shapes. The shape can be spun or thrown around with the mouse.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/viewer"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "interactive 3D shape viewer"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Value: viewer.DefaultConfigFile,
			Usage: "path to the TOML configuration file",
		},
		cli.StringFlag{
			Name:  "shape",
			Usage: "initial shape (cube, sphere, cylinder, torus, cone, octahedron)",
		},
		cli.StringFlag{
			Name:  "variant",
			Usage: "interaction mode (spin or throw)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this file, rotated by size",
		},
		cli.BoolFlag{
			Name:  "no-watch",
			Usage: "do not reload the configuration file when it changes",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		core.LogFatal("%s", err)
	}
}

func run(c *cli.Context) error {
	configPath := c.GlobalString("config")
	cfg, err := viewer.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if s := c.GlobalString("shape"); s != "" {
		cfg.Scene.Shape = s
	}
	if v := c.GlobalString("variant"); v != "" {
		cfg.Scene.Variant = v
	}
	if l := c.GlobalString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if f := c.GlobalString("log-file"); f != "" {
		cfg.Log.File = f
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	core.LogConfigure(cfg.LogOptions())

	watchPath := configPath
	if c.GlobalBool("no-watch") {
		watchPath = ""
	} else if _, err := os.Stat(configPath); err != nil {
		// nothing to watch
		watchPath = ""
	}

	v, err := viewer.NewViewer(cfg, watchPath)
	if err != nil {
		return err
	}

	e, err := engine.New(v.Game)
	if err != nil {
		return err
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	go func() {
		if sig, ok := <-sigCh; ok {
			core.LogInfo("received %s, quitting", sig)
			e.Quit()
		}
	}()

	return e.Run()
}
