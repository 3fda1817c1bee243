package display

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/render/layout"
	"github.com/rook-computer/keyviz/internal/state"
)

const DefaultDevice = "/dev/fb0"

// screenPadding keeps the keyboard off the physical screen edge.
const screenPadding = 16

// FBDisplay rasterizes the scene and blits it to the Linux framebuffer,
// scaled to fit and centred on the page colour.
type FBDisplay struct {
	Device string
	Logger Logger

	fbDev       *fb.Device
	rasterizer  *render.Rasterizer
	running     atomic.Bool
	lastVersion uint64
}

func NewFBDisplay(device string) *FBDisplay {
	if device == "" {
		device = DefaultDevice
	}
	return &FBDisplay{Device: device}
}

func (d *FBDisplay) Start(ctx context.Context) error {
	dev, err := fb.Open(d.Device)
	if err != nil {
		return err
	}
	d.fbDev = dev
	if d.Logger != nil {
		bounds := dev.Bounds()
		d.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	d.rasterizer = render.NewRasterizer()
	d.rasterizer.Logger = d.Logger
	d.running.Store(true)
	return nil
}

func (d *FBDisplay) Stop() error {
	d.running.Store(false)
	if d.fbDev != nil {
		d.fbDev.Close()
	}
	return nil
}

// RedrawWithState paints the snapshot's scene to the framebuffer.
func (d *FBDisplay) RedrawWithState(snap state.Snapshot) {
	if !d.running.Load() || d.fbDev == nil || snap.Scene == nil {
		return
	}
	canvas := d.rasterizer.Rasterize(snap.Scene)
	blit(d.fbDev, canvas, snap.Scene.Theme.Page)
	d.lastVersion = snap.Version
	if d.Logger != nil {
		d.Logger.Infof("fb", "redraw done, version=%d", snap.Version)
	}
}

// RunLoop polls the store at ~30 FPS and redraws whenever its version moved.
func (d *FBDisplay) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if store.Version() == d.lastVersion {
				continue
			}
			d.RedrawWithState(store.Snapshot())
		}
	}
}

// blit scales canvas into dst, keeping its aspect ratio.
func blit(dst draw.Image, canvas *image.RGBA, background color.Color) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{C: background}, image.Point{}, draw.Src)
	target := layout.Fit(layout.Inset(bounds, screenPadding), canvas.Bounds())
	if target.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, target, canvas, canvas.Bounds(), draw.Over, nil)
}
