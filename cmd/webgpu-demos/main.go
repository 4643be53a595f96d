package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	demos "github.com/gekko3d/webgpu-demos"
	"github.com/gekko3d/webgpu-demos/internal/config"
	"github.com/gekko3d/webgpu-demos/internal/demo"
	"github.com/gekko3d/webgpu-demos/internal/gpu"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	routePath := flag.String("route", "", "Demo to start with, e.g. triangle or /#/uniforms")
	debug := flag.Bool("debug", false, "Enable debug logging")
	probe := flag.Bool("probe", false, "Report whether WebGPU is available and exit")
	list := flag.Bool("list", false, "List the demo routes and exit")
	dump := flag.Bool("dump-config", false, "Print the effective configuration and exit")
	flag.Parse()

	log := demos.NewDefaultLogger("demos", *debug)

	if *probe {
		supported := gpu.Probe()
		fmt.Println(gpu.ProbeMessage(supported))
		if !supported {
			os.Exit(1)
		}
		return
	}

	if *list {
		for i, e := range demo.Entries() {
			fmt.Printf("%d  %-16s %s\n", i+1, e.Route.URL(), e.Route.Title)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if *routePath != "" {
		cfg.Route = *routePath
	}
	cfg.Debug = cfg.Debug || *debug

	if *dump {
		data, err := cfg.Encode()
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	app, err := demos.NewAppBuilder(cfg).
		UseModule(demos.DefaultModules(cfg)...).
		Build()
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
