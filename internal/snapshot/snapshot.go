// Package snapshot rasterises a composed frame without a GPU. It projects the
// frame through a pinhole camera on the same orbit as the interactive tour
// and paints back to front.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const nearPlane = 0.05

// Options controls the virtual camera and canvas.
type Options struct {
	Width  int
	Height int
	// Yaw turns the camera about the vertical axis, in radians.
	Yaw       float64
	Distance  float64
	Elevation float64
	// FOV is the vertical field of view in radians.
	FOV        float64
	Target     scene.Vec3
	Background color.Color
	Labels     bool
	// EmptyText is drawn when the frame has no instances.
	EmptyText string
}

func DefaultOptions() Options {
	return Options{
		Width:      960,
		Height:     600,
		Distance:   9,
		Elevation:  3.5,
		FOV:        math.Pi / 4,
		Target:     scene.V3(0, 0.6, 0),
		Background: color.RGBA{R: 18, G: 24, B: 20, A: 255},
		Labels:     true,
		EmptyText:  "No plants found",
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", o.Width, o.Height)
	}
	if o.Distance <= 0 {
		return errors.New("camera distance must be positive")
	}
	if o.FOV <= 0 || o.FOV >= math.Pi {
		return errors.New("field of view must be within (0, pi)")
	}
	return nil
}

type camera struct {
	eye, right, up, forward scene.Vec3
	focal, cx, cy           float64
}

func newCamera(o Options) camera {
	eye := scene.V3(math.Sin(o.Yaw)*o.Distance, o.Elevation, math.Cos(o.Yaw)*o.Distance)
	forward := o.Target.Sub(eye).Normalize()
	right := forward.Cross(scene.V3(0, 1, 0)).Normalize()
	up := right.Cross(forward)
	return camera{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   float64(o.Height) / 2 / math.Tan(o.FOV/2),
		cx:      float64(o.Width) / 2,
		cy:      float64(o.Height) / 2,
	}
}

// project maps a world point to canvas coordinates and its view depth. ok is
// false for points behind the near plane.
func (c camera) project(p scene.Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(c.eye)
	depth = d.Dot(c.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	x = c.cx + d.Dot(c.right)/depth*c.focal
	y = c.cy - d.Dot(c.up)/depth*c.focal
	return x, y, depth, true
}

type primitive struct {
	depth float64
	draw  func(dc *gg.Context)
}

// Render paints frame into a new image.
func Render(frame scene.Frame, opts Options) (image.Image, error) {
	dc, err := paint(frame, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func paint(frame scene.Frame, opts Options) (*gg.Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	cam := newCamera(opts)
	drawGround(dc, cam)

	prims := make([]primitive, 0, len(frame.Instances)*8)
	for _, inst := range frame.Instances {
		prims = appendInstance(prims, cam, inst)
	}
	sort.SliceStable(prims, func(i, j int) bool { return prims[i].depth > prims[j].depth })
	for _, p := range prims {
		p.draw(dc)
	}

	if opts.Labels {
		drawLabels(dc, cam, frame.Instances)
	}
	if len(frame.Instances) == 0 && opts.EmptyText != "" {
		dc.SetRGBA(0.85, 0.9, 0.85, 1)
		dc.DrawStringAnchored(opts.EmptyText, cam.cx, cam.cy, 0.5, 0.5)
	}
	return dc, nil
}

// Encode renders frame as PNG to w.
func Encode(w io.Writer, frame scene.Frame, opts Options) error {
	dc, err := paint(frame, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG renders frame to a file.
func SavePNG(path string, frame scene.Frame, opts Options) error {
	img, err := Render(frame, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func drawGround(dc *gg.Context, cam camera) {
	const segments = 48
	dc.SetRGBA(0.16, 0.22, 0.15, 1)
	drawn := 0
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		x, y, _, ok := cam.project(scene.V3(math.Cos(a)*6, 0, math.Sin(a)*6))
		if !ok {
			continue
		}
		if drawn == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
		drawn++
	}
	if drawn > 2 {
		dc.ClosePath()
		dc.Fill()
	} else {
		dc.ClearPath()
	}
}

func appendInstance(prims []primitive, cam camera, inst scene.RenderedInstance) []primitive {
	stem := inst.Stem
	bx, by, bd, okBase := cam.project(stem.Base)
	tx, ty, td, okTop := cam.project(stem.Top)
	if okBase && okTop {
		width := math.Max(1, 2*stem.Radius*cam.focal/((bd+td)/2))
		c := rgba(stem.Color)
		prims = append(prims, primitive{
			depth: (bd + td) / 2,
			draw: func(dc *gg.Context) {
				dc.SetLineCapRound()
				dc.SetLineWidth(width)
				dc.SetColor(c)
				dc.DrawLine(bx, by, tx, ty)
				dc.Stroke()
			},
		})
	}

	for _, leaf := range inst.Leaves {
		var pts [4][2]float64
		depth := 0.0
		visible := true
		for i, corner := range leaf.Corners {
			x, y, d, ok := cam.project(corner)
			if !ok {
				visible = false
				break
			}
			pts[i] = [2]float64{x, y}
			depth += d / 4
		}
		if !visible {
			continue
		}
		c := rgba(leaf.Color)
		prims = append(prims, primitive{
			depth: depth,
			draw: func(dc *gg.Context) {
				dc.MoveTo(pts[0][0], pts[0][1])
				for _, p := range pts[1:] {
					dc.LineTo(p[0], p[1])
				}
				dc.ClosePath()
				dc.SetColor(c)
				dc.FillPreserve()
				dc.SetRGBA(0, 0, 0, 0.25)
				dc.SetLineWidth(1)
				dc.Stroke()
			},
		})
	}
	return prims
}

func drawLabels(dc *gg.Context, cam camera, instances []scene.RenderedInstance) {
	for _, inst := range instances {
		x, y, _, ok := cam.project(inst.Label.Anchor)
		if !ok || inst.Label.Text == "" {
			continue
		}
		w, h := dc.MeasureString(inst.Label.Text)
		dc.SetRGBA(0, 0, 0, 0.55)
		dc.DrawRoundedRectangle(x-w/2-4, y-h-6, w+8, h+8, 3)
		dc.Fill()
		dc.SetRGBA(1, 1, 1, 1)
		dc.DrawStringAnchored(inst.Label.Text, x, y-h/2-2, 0.5, 0.5)
	}
}

func rgba(c variant.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
