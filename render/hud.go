package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravsim/engine"
)

// HelpLine lists the interactive controls
const HelpLine = "space:run  n:step  click:select  esc:deselect  d:dup  a:add  x:del  +/-:mass  [/]:radius  " +
	"t:traj  v:vel  </>:steps  arrows/WASD:orbit  z/Z:zoom  s:save  r:reset  R:reset vel  m:mute  q:quit"

func (r *Renderer) drawHUD(w, h int, v View) {
	stateText, stateColor := "[PAUSED]", pausedColor
	if v.State == engine.Running {
		stateText, stateColor = "[RUNNING]", runningColor
	}
	x := r.buf.Text(1, 0, stateText, stateColor, tcell.AttrBold)

	flags := fmt.Sprintf(" t=%.2fs  bodies=%d  steps=%d  traj:%s  vel:%s",
		v.SimTime, len(v.Bodies), v.Steps, onOff(v.DrawTrajectories), onOff(v.DrawVelocities))
	if v.Muted {
		flags += "  [muted]"
	}
	r.buf.Text(x, 0, flags, hudColor, tcell.AttrNone)

	if line, c, ok := selectedLine(v); ok {
		r.buf.Text(1, 1, line, c, tcell.AttrNone)
	}

	for i, m := range v.Metrics {
		y := 2 + i
		if y >= h-2 {
			break
		}
		r.buf.Text(w-len(m)-1, y, m, dimColor, tcell.AttrNone)
	}

	if v.Message != "" && h > 2 {
		r.buf.Text(1, h-2, v.Message, hudColor, tcell.AttrNone)
	}
	if h > 1 {
		r.buf.Text(1, h-1, HelpLine, dimColor, tcell.AttrNone)
	}
}

func selectedLine(v View) (string, colorful.Color, bool) {
	for i := range v.Bodies {
		b := &v.Bodies[i]
		if b.ID != v.Selected {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "> %s (%s) m=%.4g r=%.3g", b.Name, b.Kind, b.Mass, b.Radius)
		fmt.Fprintf(&sb, " pos=(%.1f, %.1f, %.1f) |v|=%.2f", b.Position[0], b.Position[1], b.Position[2], b.Velocity.Len())
		if li := b.LightIntensity(); li > 0 {
			fmt.Fprintf(&sb, " light=%.3g", li)
		}
		return sb.String(), b.Color.Clamped(), true
	}
	return "", colorful.Color{}, false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
