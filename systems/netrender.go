package systems

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/automoto/netinterp/components"
	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/fonts"
	"github.com/automoto/netinterp/network"
	"github.com/automoto/netinterp/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawRemoteEntities draws every interpolated remote entity as a rotated,
// scaled square, with a dot at the newest received position.
func DrawRemoteEntities(e *ecs.ECS, screen *ebiten.Image) {
	smallFont := fonts.HUDSmall.Get()
	colorIndex := 0

	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.NetInterp) {
			return
		}

		pos := netcomponents.NetPosition.Get(entry)
		rot := netcomponents.NetOrientation.Get(entry)
		scale := netcomponents.NetScale.Get(entry)
		data := components.NetInterp.Get(entry)

		bodyColor := cfg.EntityColors[colorIndex%len(cfg.EntityColors)]
		colorIndex++

		drawBody(screen, pos.Vec3(), rot.Heading(), scale.Vec3(), bodyColor)

		if data.Updates > 0 {
			vector.DrawFilledCircle(screen,
				float32(data.Received.X()), float32(data.Received.Y()),
				cfg.HUD.ReceivedDot, cfg.LightRed, true)
		}

		if nid := esync.GetNetworkId(entry); nid != nil {
			label := "ID:" + strconv.Itoa(int(*nid))
			labelX := int(pos.X) - len(label)*3
			labelY := int(pos.Y) - int(cfg.HUD.BodySize*scale.Y) - 8
			text.Draw(screen, label, smallFont, labelX, labelY, cfg.White)
		}
	})
}

// drawBody outlines a square centred on pos, rotated by heading and
// stretched by scale.
func drawBody(screen *ebiten.Image, pos mgl64.Vec3, heading float64, scale mgl64.Vec3, clr color.Color) {
	hx := cfg.HUD.BodySize * scale.X()
	hy := cfg.HUD.BodySize * scale.Y()
	sin, cos := math.Sincos(heading)

	corners := [4]mgl64.Vec3{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}}
	var pts [4][2]float32
	for i, c := range corners {
		pts[i][0] = float32(pos.X() + c.X()*cos - c.Y()*sin)
		pts[i][1] = float32(pos.Y() + c.X()*sin + c.Y()*cos)
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		vector.StrokeLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], 2, clr, true)
	}

	// Heading marker
	nx := float32(pos.X() + hx*cos)
	ny := float32(pos.Y() + hx*sin)
	vector.StrokeLine(screen, float32(pos.X()), float32(pos.Y()), nx, ny, 1, clr, true)
}

// NewAuthorityRenderer returns a renderer that marks the true authoritative
// positions, which the interpolated bodies trail by the buffer delay plus
// link latency.
func NewAuthorityRenderer(positions func() []mgl64.Vec3) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		for _, p := range positions() {
			vector.StrokeCircle(screen, float32(p.X()), float32(p.Y()), 5, 1, cfg.DarkBlue, true)
		}
	}
}

// NewNetHUD returns a renderer for the interpolation and link status text.
func NewNetHUD(linkStats func() network.LinkStats) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		face := fonts.HUD.Get()
		mono := fonts.Mono.Get()
		x := cfg.HUD.Margin
		y := cfg.HUD.Margin + cfg.HUD.LineHeight

		line := func(clr color.Color, format string, args ...any) {
			text.Draw(screen, fmt.Sprintf(format, args...), face, x, y, clr)
			y += cfg.HUD.LineHeight
		}

		clamp := "off"
		if cfg.Interp.ClampAlpha {
			clamp = "on"
		}
		line(cfg.LightGreen, "mode %s [M]  delay %.0fms [Up/Down]  clamp %s [C]",
			cfg.Interp.Mode, cfg.Interp.BufferDelay*1000, clamp)

		stats := linkStats()
		line(cfg.LightGreen, "latency %.0fms  jitter %.0fms [J]  loss %.0f%% [L]  sent %d  lost %d  late %d",
			cfg.Demo.LatencyMillis, cfg.Demo.JitterMillis, cfg.Demo.Loss*100,
			stats.Sent, stats.Dropped, stats.Reordered)

		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			data := components.NetInterp.Get(entry)
			if data.Buffer == nil {
				return
			}
			b := data.Buffer
			id := 0
			if nid := esync.GetNetworkId(entry); nid != nil {
				id = int(*nid)
			}
			// Monospaced so the numeric columns stay aligned.
			text.Draw(screen, fmt.Sprintf("#%d %-12s clock %7.0fms  pending %2d  alpha %5.2f  stale %d",
				id, b.State(), b.Clock(), b.Len(), b.Alpha(), data.Dropped), mono, x, y, cfg.White)
			y += cfg.HUD.LineHeight
		})

		line(cfg.Yellow, "[R] respawn remotes")
	}
}
