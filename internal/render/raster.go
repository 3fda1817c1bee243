package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Rasterizer paints scenes into RGBA images. Labels use Go Mono; when the
// font cannot be loaded it falls back to the 7x13 bitmap face.
type Rasterizer struct {
	Logger logger

	mu    sync.Mutex
	font  *opentype.Font
	faces map[int]font.Face
}

func NewRasterizer() *Rasterizer {
	r := &Rasterizer{faces: make(map[int]font.Face)}
	fnt, err := opentype.Parse(gomono.TTF)
	if err == nil {
		r.font = fnt
	}
	return r
}

// Rasterize paints the scene at one pixel per scene unit.
func (r *Rasterizer) Rasterize(scene *Scene) *image.RGBA {
	width := int(math.Ceil(scene.Width))
	height := int(math.Ceil(scene.Height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: scene.Theme.Page}, image.Point{}, draw.Src)

	z := raster.NewRasterizer(width, height)
	z.UseNonZeroWinding = true
	painter := raster.NewRGBAPainter(img)

	if scene.Border.Style.Stroke != nil {
		raster.Stroke(z, roundedRectPath(scene.Border), fixed.I(1), nil, nil)
		painter.SetColor(scene.Border.Style.Stroke)
		z.Rasterize(painter)
		z.Clear()
	}

	for _, k := range scene.Keys {
		fillRect(z, painter, k.Base)
		if k.Base.Style.Stroke != nil {
			raster.Stroke(z, rectPath(k.Base), fixed.I(1), nil, nil)
			painter.SetColor(k.Base.Style.Stroke)
			z.Rasterize(painter)
			z.Clear()
		}
		r.drawLabel(img, k.Label)
		if k.Overlay.Style.Opacity > 0 {
			fillRect(z, painter, k.Overlay)
		}
	}
	return img
}

// EncodePNG rasterizes the scene and writes it as PNG.
func (r *Rasterizer) EncodePNG(w io.Writer, scene *Scene) error {
	return png.Encode(w, r.Rasterize(scene))
}

func fillRect(z *raster.Rasterizer, painter *raster.RGBAPainter, rect Rect) {
	if rect.Style.Fill == nil || rect.Style.Opacity <= 0 {
		return
	}
	z.AddPath(rectPath(rect))
	painter.SetColor(withOpacity(rect.Style.Fill, rect.Style.Opacity))
	z.Rasterize(painter)
	z.Clear()
}

func (r *Rasterizer) drawLabel(dst *image.RGBA, t Text) {
	if t.Value == "" {
		return
	}
	face := r.face(t.FontSize * t.Scale)
	drawer := &font.Drawer{Face: face}
	metrics := face.Metrics()
	textWidth := drawer.MeasureString(t.Value).Ceil()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	if textWidth <= 0 || textHeight <= 0 {
		return
	}

	var fill color.Color = color.Black
	if t.Style.Fill != nil {
		fill = t.Style.Fill
	}
	label := image.NewRGBA(image.Rect(0, 0, textWidth, textHeight))
	drawer.Dst = label
	drawer.Src = image.NewUniform(fill)
	drawer.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
	drawer.DrawString(t.Value)

	// Rotate the label about its own centre and move that centre to (t.X, t.Y).
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	halfW, halfH := float64(textWidth)/2, float64(textHeight)/2
	s2d := f64.Aff3{
		cos, -sin, t.X - (cos*halfW - sin*halfH),
		sin, cos, t.Y - (sin*halfW + cos*halfH),
	}
	xdraw.BiLinear.Transform(dst, s2d, label, label.Bounds(), xdraw.Over, nil)
}

// face returns a font face of the given pixel size, cached by quarter pixel.
func (r *Rasterizer) face(px float64) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.font == nil {
		return basicfont.Face7x13
	}
	if r.faces == nil {
		r.faces = make(map[int]font.Face)
	}
	key := int(math.Round(px * 4))
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{Size: float64(key) / 4, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("raster", "font face %.2fpx failed, using basicfont: %v", px, err)
		}
		return basicfont.Face7x13
	}
	r.faces[key] = face
	return face
}

func rectPath(rect Rect) raster.Path {
	corners := rect.Corners()
	var path raster.Path
	path.Start(point(corners[0][0], corners[0][1]))
	for _, c := range corners[1:] {
		path.Add1(point(c[0], c[1]))
	}
	path.Add1(point(corners[0][0], corners[0][1]))
	return path
}

// roundedRectPath ignores rotation; it is only used for the bounding box.
func roundedRectPath(rect Rect) raster.Path {
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W, rect.Y+rect.H
	rad := math.Min(rect.Radius, math.Min(rect.W, rect.H)/2)

	var path raster.Path
	path.Start(point(x0+rad, y0))
	path.Add1(point(x1-rad, y0))
	path.Add2(point(x1, y0), point(x1, y0+rad))
	path.Add1(point(x1, y1-rad))
	path.Add2(point(x1, y1), point(x1-rad, y1))
	path.Add1(point(x0+rad, y1))
	path.Add2(point(x0, y1), point(x0, y1-rad))
	path.Add1(point(x0, y0+rad))
	path.Add2(point(x0, y0), point(x0+rad, y0))
	return path
}

func point(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

func withOpacity(c color.Color, opacity float64) color.Color {
	opacity = math.Max(0, math.Min(1, opacity))
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(math.Round(opacity * 255))}
}
