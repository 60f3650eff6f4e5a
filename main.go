package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"TraceBoard/internal/character"
	"TraceBoard/internal/config"
	"TraceBoard/internal/mirror"
	"TraceBoard/internal/settings"
	"TraceBoard/internal/trace"
	"TraceBoard/internal/ui"

	"fyne.io/fyne/v2/app"
	"github.com/kataras/golog"
)

const AppID = "io.traceboard.app"

func main() {
	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("Failed to load config: %v", err)
	}
	golog.SetLevel(cfg.Log.Level)
	if len(os.Args) > 1 && os.Args[1] == "browse" {
		runBrowse()
		return
	}
	golog.Infof("Starting TraceBoard (pid %d)", os.Getpid())

	a := app.NewWithID(AppID)

	provider := character.Default(
		character.WithBaseURL(cfg.PokeAPI.BaseURL),
		character.WithTimeout(cfg.PokeAPI.Timeout),
	)
	prefs := settings.New(a.Preferences())

	surface := trace.NewSurface(
		trace.WithPalmRejection(cfg.Trace.PalmRejection),
		trace.WithMaxSegment(cfg.Trace.MaxSegment),
		trace.WithScale(cfg.Trace.Scale),
	)

	opts := ui.Options{
		Provider:     provider,
		Settings:     prefs,
		Surface:      surface,
		StrokeWidth:  cfg.Trace.StrokeWidth,
		Scale:        cfg.Trace.Scale,
		ImageTimeout: cfg.PokeAPI.Timeout,
		ExportDir:    cfg.Export.Dir,
		ExportFont:   cfg.Export.Font,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Mirror.Enabled {
		hub := startMirror(ctx, cfg.Mirror, provider, surface)
		opts.Observer = hub
		opts.Status = "Viewers can connect at " + mirror.ShareURL(cfg.Mirror.Port)
	}

	ui.RunApp(a, opts)
}

// startMirror wires the surface into the viewer hub and serves it until ctx ends.
func startMirror(ctx context.Context, cfg config.MirrorConfig, provider *character.Provider, surface *trace.Surface) *mirror.Hub {
	hub := mirror.NewHub()
	hub.Strokes = surface.Strokes
	surface.OnSegment = hub.Segment
	surface.OnClear = hub.Clear

	server := mirror.NewServer(hub, provider, cfg.Port)
	go func() {
		if err := server.Run(ctx); err != nil {
			golog.Errorf("Mirror server stopped: %v", err)
		}
	}()

	if cfg.Advertise {
		mdnsServer, err := mirror.Advertise(cfg.Port)
		if err != nil {
			golog.Warnf("mDNS advertise failed: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				mdnsServer.Shutdown()
			}()
		}
	}
	return hub
}

// runBrowse lists the mirrors advertised on the local network.
func runBrowse() {
	err := mirror.Browse(3*time.Second, func(m mirror.Mirror) {
		fmt.Printf("%s\t%s\n", m.Instance, m.URL())
	})
	if err != nil {
		golog.Fatalf("mDNS lookup failed: %v", err)
	}
}
