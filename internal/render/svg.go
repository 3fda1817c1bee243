package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/rook-computer/keyviz/internal/palette"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type svgDocument struct {
	XMLName       xml.Name `xml:"svg"`
	Xmlns         string   `xml:"xmlns,attr"`
	Width         string   `xml:"width,attr"`
	Height        string   `xml:"height,attr"`
	ViewBox       string   `xml:"viewBox,attr"`
	Keyboard      string   `xml:"data-keyboard,attr"`
	Configuration string   `xml:"data-configuration,attr"`
	Border        svgRect
	Keys          []svgGroup
}

// svgGroup children are marshalled in slice order so the overlay ends up on
// top of the label.
type svgGroup struct {
	XMLName  xml.Name `xml:"g"`
	Class    string   `xml:"class,attr"`
	KeyID    string   `xml:"data-key,attr"`
	State    string   `xml:"data-state,attr"`
	Children []any
}

type svgRect struct {
	XMLName   xml.Name `xml:"rect"`
	Class     string   `xml:"class,attr,omitempty"`
	X         string   `xml:"x,attr"`
	Y         string   `xml:"y,attr"`
	Width     string   `xml:"width,attr"`
	Height    string   `xml:"height,attr"`
	Rx        string   `xml:"rx,attr,omitempty"`
	Fill      string   `xml:"fill,attr"`
	Stroke    string   `xml:"stroke,attr"`
	Opacity   string   `xml:"opacity,attr,omitempty"`
	Transform string   `xml:"transform,attr,omitempty"`
}

type svgText struct {
	XMLName          xml.Name `xml:"text"`
	Class            string   `xml:"class,attr"`
	X                string   `xml:"x,attr"`
	Y                string   `xml:"y,attr"`
	TextAnchor       string   `xml:"text-anchor,attr"`
	DominantBaseline string   `xml:"dominant-baseline,attr"`
	FontFamily       string   `xml:"font-family,attr"`
	FontSize         string   `xml:"font-size,attr"`
	Fill             string   `xml:"fill,attr"`
	Transform        string   `xml:"transform,attr,omitempty"`
	Value            string   `xml:",chardata"`
}

// EncodeSVG writes the scene as a standalone SVG document. Every key is a
// <g data-key="id"> holding the base rect, the label and the overlay rect.
func EncodeSVG(w io.Writer, scene *Scene) error {
	doc := svgDocument{
		Xmlns:         svgNamespace,
		Width:         num(scene.Width),
		Height:        num(scene.Height),
		ViewBox:       fmt.Sprintf("0 0 %s %s", num(scene.Width), num(scene.Height)),
		Keyboard:      scene.Keyboard,
		Configuration: scene.Configuration,
		Border:        encodeRect("border", scene.Border),
		Keys:          make([]svgGroup, 0, len(scene.Keys)),
	}
	for _, k := range scene.Keys {
		doc.Keys = append(doc.Keys, svgGroup{
			Class: "key",
			KeyID: k.ID,
			State: k.State().String(),
			Children: []any{
				encodeRect("key-base", k.Base),
				encodeText(k.Label),
				encodeRect("key-button", k.Overlay),
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	return encoder.Close()
}

func encodeRect(class string, r Rect) svgRect {
	out := svgRect{
		Class:  class,
		X:      num(r.X),
		Y:      num(r.Y),
		Width:  num(r.W),
		Height: num(r.H),
		Fill:   palette.Hex(r.Style.Fill),
		Stroke: palette.Hex(r.Style.Stroke),
	}
	if r.Radius > 0 {
		out.Rx = num(r.Radius)
	}
	if r.Style.Opacity != 1 {
		out.Opacity = num(r.Style.Opacity)
	}
	if r.Rotation != 0 {
		cx, cy := r.Center()
		out.Transform = fmt.Sprintf("rotate(%s %s %s)", num(r.Rotation), num(cx), num(cy))
	}
	return out
}

func encodeText(t Text) svgText {
	cx, cy := num(t.X), num(t.Y)
	return svgText{
		Class:            "key-label",
		X:                cx,
		Y:                cy,
		TextAnchor:       "middle",
		DominantBaseline: "central",
		FontFamily:       t.FontFamily,
		FontSize:         num(t.FontSize),
		Fill:             palette.Hex(t.Style.Fill),
		Transform: fmt.Sprintf("translate(%s %s) rotate(%s) scale(%s) translate(-%s -%s)",
			cx, cy, num(t.Rotation), num(t.Scale), cx, cy),
		Value: t.Value,
	}
}

// num prints v with at most three decimals.
func num(v float64) string {
	rounded := math.Round(v*1000) / 1000
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
