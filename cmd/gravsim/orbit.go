package main

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/scene"
	"github.com/lixenwraith/gravsim/vmath"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Chart width in samples
const chartWidth = 70

type orbitFlags struct {
	ticks  int
	body   int
	around int
	height int
}

func newOrbitCmd(rf *rootFlags) *cobra.Command {
	f := &orbitFlags{}
	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Integrate a scene headless and chart the distance between two bodies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			sc, _, err := rf.loadScene()
			if err != nil {
				return err
			}
			settings := cfg.EngineSettings()
			if sc.G > 0 {
				settings.G = sc.G
			}
			return runOrbit(cmd.OutOrStdout(), sc, settings, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.ticks, "ticks", 600, "Number of simulation ticks")
	fl.IntVar(&f.body, "body", 1, "Index of the orbiting body")
	fl.IntVar(&f.around, "around", 0, "Index of the reference body")
	fl.IntVar(&f.height, "height", 12, "Chart height in rows")
	return cmd
}

func runOrbit(w io.Writer, sc *scene.Scene, settings engine.Settings, f *orbitFlags) error {
	if f.ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", f.ticks)
	}

	reg := body.NewRegistry()
	if err := sc.Apply(reg); err != nil {
		return err
	}
	n := reg.Len()
	if f.body < 0 || f.body >= n || f.around < 0 || f.around >= n {
		return fmt.Errorf("body indices must be in [0,%d), got %d and %d", n, f.body, f.around)
	}
	if f.body == f.around {
		return fmt.Errorf("body and reference must differ")
	}

	sim := engine.NewSimulation(reg, settings, nil, nil)
	distances := make([]float64, 0, f.ticks+1)
	distances = append(distances, bodyDistance(reg, f.body, f.around))
	for i := 0; i < f.ticks; i++ {
		sim.Step()
		distances = append(distances, bodyDistance(reg, f.body, f.around))
	}

	bodies := reg.Bodies()
	a, b := bodies[f.body], bodies[f.around]
	minD, maxD := minMax(distances)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s around %s", a.Name, b.Name)))
	fmt.Fprintln(w, row("ticks", fmt.Sprintf("%d x %.4gs = %.4gs", f.ticks, settings.TickDt(), sim.SimTime())))
	fmt.Fprintln(w, row("distance", fmt.Sprintf("min %.4g  max %.4g", minD, maxD)))

	chart := asciigraph.Plot(downsample(distances, chartWidth),
		asciigraph.Height(f.height),
		asciigraph.Caption("distance per tick"))
	fmt.Fprintln(w, graphStyle.Render(chart))

	for i := range bodies {
		fmt.Fprintln(w, row(bodies[i].Name, formatVec(bodies[i].Position)))
	}
	return nil
}

func bodyDistance(reg *body.Registry, i, j int) float64 {
	bodies := reg.Bodies()
	return vmath.Dist(bodies[i].Position, bodies[j].Position)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func formatVec(v vmath.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}

func minMax(xs []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// downsample keeps at most n evenly spaced samples, always including the last
func downsample(xs []float64, n int) []float64 {
	if len(xs) <= n || n < 2 {
		return xs
	}
	out := make([]float64, n)
	step := float64(len(xs)-1) / float64(n-1)
	for i := range out {
		out[i] = xs[int(math.Round(float64(i)*step))]
	}
	return out
}
