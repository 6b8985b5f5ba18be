package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rika-tools/vertexa/applog"
	"github.com/rika-tools/vertexa/browser"
	"github.com/rika-tools/vertexa/config"
	"github.com/rika-tools/vertexa/loader"
	"github.com/rika-tools/vertexa/step"
	"github.com/rika-tools/vertexa/viewport"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] model.obj ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "config file (default: per-user config)")
	kernel := flag.String("kernel", "", "STEP kernel command, space separated, with {input} {output} {deflection}")
	deflection := flag.Float64("deflection", 0, "STEP tessellation tolerance (0: from config)")
	list := flag.String("ls", "", "list supported model files in a directory and exit")
	showMaterial := flag.Bool("material", false, "print material parameters per object")
	viewName := flag.String("view", "", "print the camera pose for a standard view (front, back, left, right, top, bottom)")
	logDir := flag.String("logdir", "", "write a session log under this directory")
	flag.Parse()

	if *list != "" {
		entries, err := browser.List(*list)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, e := range entries {
			if e.Dir {
				fmt.Printf("%s/\n", e.Name)
			} else {
				fmt.Printf("%s\t%s\n", e.Name, e.Format)
			}
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	logger := applog.Discard()
	if *logDir != "" {
		l, err := applog.Open(*logDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer l.Close()
		logger = l
	}
	defer logger.CrashHandler()

	cfg := loadConfig(*configPath, logger)
	ld := newLoader(cfg, *kernel, float32(*deflection), logger)

	v := viewport.New(ld, nil, logger.Logger)
	v.SetClearOnLoad(false)

	failed := false
	for _, path := range flag.Args() {
		res, err := ld.Load(context.Background(), path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s (%v)\n", path, viewport.UserMessage(err), err)
			failed = true
			continue
		}
		v.Scene.AddAll(res.Meshes)
		fmt.Printf("%s: %s, %d object(s)\n", path, res.Format, len(res.Meshes))
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		for _, m := range res.Meshes {
			b := m.Bounds()
			ext := b.Extent()
			fmt.Printf("  %-24s %7d verts %7d faces  extent %.3g x %.3g x %.3g  uv=%v\n",
				m.Name, len(m.Vertices), len(m.Faces), ext.X, ext.Y, ext.Z, m.HasUVs())
		}
	}

	if *viewName != "" {
		view, ok := viewport.ParseView(*viewName)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown view %q\n", *viewName)
			os.Exit(1)
		}
		v.SetStandardView(view)
		cam := v.Camera()
		fmt.Printf("%s view: position %.3g %.3g %.3g  focal %.3g %.3g %.3g  up %g %g %g\n",
			view, cam.Position.X, cam.Position.Y, cam.Position.Z,
			cam.FocalPoint.X, cam.FocalPoint.Y, cam.FocalPoint.Z,
			cam.Up.X, cam.Up.Y, cam.Up.Z)
	}

	if *showMaterial {
		for _, obj := range v.Scene.Objects() {
			p := obj.Material
			fmt.Printf("%s: base=%v metallic=%.2f roughness=%.2f ior=%.2f alpha=%.2f\n",
				obj.Name, p.BaseColor, p.Metallic, p.Roughness, p.IOR, p.Alpha)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func loadConfig(path string, logger *applog.Log) *config.Config {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default()
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Printf("config %s: %v", path, err)
		return config.Default()
	}
	return cfg
}

func newLoader(cfg *config.Config, kernel string, deflection float32, logger *applog.Log) *loader.Loader {
	ld := loader.New()
	ld.Logger = logger.Logger
	command := cfg.StepKernel
	if kernel != "" {
		command = strings.Fields(kernel)
	}
	if len(command) > 0 {
		ld.Kernel = &step.ExecKernel{Command: command}
	}
	ld.Deflection = cfg.StepDeflection
	if deflection > 0 {
		ld.Deflection = deflection
	}
	return ld
}
