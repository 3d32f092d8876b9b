package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/camera"
	"github.com/pthm-cable/bloom/game"
)

// PickCluster returns the cluster drawn under screen point (sx, sy), preferring
// the one nearest the camera when bodies overlap.
func PickCluster(f game.Frame, cam *camera.Camera, sx, sy float64) (game.ClusterDescriptor, bool) {
	var (
		best     game.ClusterDescriptor
		bestDist = math.Inf(1)
		found    bool
	)
	for _, c := range f.Clusters {
		cx, cy, ok := cam.Project(c.Position)
		if !ok {
			continue
		}
		ex, ey, ok := cam.Project(r3.Add(c.Position, r3.Scale(c.Size, cam.Right())))
		if !ok {
			continue
		}
		radius := math.Hypot(ex-cx, ey-cy)
		if math.Hypot(sx-cx, sy-cy) > radius {
			continue
		}
		d := r3.Norm2(r3.Sub(c.Position, cam.Position))
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

var clusterSections = []SectionDescriptor{
	{
		ID:    "body",
		Title: "Body",
		Fields: []FieldDescriptor{
			{ID: "members", Label: "Members", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(game.ClusterDescriptor).MemberCount) }},
			{ID: "size", Label: "Radius", Widget: WidgetText, Format: "%.2f",
				Getter: func(d any) float32 { return float32(d.(game.ClusterDescriptor).Size) }},
			{ID: "opacity", Label: "Opacity", Widget: WidgetBar, Range: DefaultRange(),
				Getter: func(d any) float32 { return float32(d.(game.ClusterDescriptor).Opacity) }},
			{ID: "color", Label: "Blend", Widget: WidgetColorSwatch,
				ColorGetter: func(d any) rl.Color { return rlColor(d.(game.ClusterDescriptor).BlendedColor) }},
			{ID: "hex", Label: "Hex", Widget: WidgetText,
				TextGetter: func(d any) string { return d.(game.ClusterDescriptor).BlendedColor.Hex() }},
		},
	},
	{
		ID:    "position",
		Title: "Position",
		Fields: []FieldDescriptor{
			{ID: "pos", Label: "XYZ", Widget: WidgetText,
				TextGetter: func(d any) string {
					p := d.(game.ClusterDescriptor).Position
					return fmt.Sprintf("%.2f, %.2f, %.2f", p.X, p.Y, p.Z)
				}},
		},
	},
}

// Inspector renders details of one cluster.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for c and returns the bottom edge.
func (ins *Inspector) Draw(c game.ClusterDescriptor) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	swatchRows := (int32(len(c.MemberColors)) + 9) / 10
	height := padding*2 + 24 + 9*r.Theme.LineHeight + 12 + swatchRows*16
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("Cluster #%d", c.ID), x, y, 18, rlColor(c.BlendedColor))
	y += 24

	for _, sd := range clusterSections {
		y = r.DrawSection(x, y, sd, c, contentWidth)
	}

	y = r.DrawSectionHeader(x, y, "Members")
	for i, mc := range c.MemberColors {
		col := int32(i % 10)
		row := int32(i / 10)
		rl.DrawRectangle(x+col*16, y+row*16, 12, 12, rlColor(mc))
	}
	return y + swatchRows*16
}

func rlColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}
