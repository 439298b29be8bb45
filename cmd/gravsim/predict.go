package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/config"
	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/scene"
)

func newPredictCmd(rf *rootFlags) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print each body's predicted end point and path length",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("steps") {
				cfg.Sim.TrajectorySteps = config.ClampSteps(steps)
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
			return runPredict(cmd.OutOrStdout(), sc, settings)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "Prediction steps (default from config)")
	return cmd
}

func runPredict(w io.Writer, sc *scene.Scene, settings engine.Settings) error {
	reg := body.NewRegistry()
	if err := sc.Apply(reg); err != nil {
		return err
	}

	sim := engine.NewSimulation(reg, settings, nil, nil)
	paths := sim.Predict()
	s := sim.Settings()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("body", "kind", "end point", "path length")

	bodies := reg.Bodies()
	for i := range paths {
		end, ok := paths[i].End()
		endStr := "-"
		if ok {
			endStr = formatVec(end)
		}
		t.Row(bodies[i].Name, bodies[i].Kind.String(), endStr, fmt.Sprintf("%.4f", paths[i].Length()))
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d steps x %gs", s.PredictSteps, s.PredictDt)))
	fmt.Fprintln(w, t.Render())
	return nil
}
