// seehuhn.de/go/vehicle - path kinematics for single-track vehicles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command trackpose evaluates vehicle path records against a scene
// description and prints the resulting part poses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/edaniels/golog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/vehicle"
	"seehuhn.de/go/vehicle/plot"
	"seehuhn.de/go/vehicle/testcases"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "trackpose",
		Short: "Vehicle path kinematics",
		Long: `trackpose computes the poses of two- and four-wheeled vehicles which
follow a planar path.  Vehicles are described by JSON records which bind
the parts of a scene description to their kinematic roles.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		evalCmd(),
		plotCmd(),
		casesCmd(),
	)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// loadScene reads a scene description from a JSON file.
func loadScene(fname string) (*vehicle.StaticScene, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	sc := &vehicle.StaticScene{}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return sc, nil
}

// loadRecords registers one vehicle per record file.  The id of a vehicle
// is the file name without extension.
func loadRecords(reg *vehicle.Registry, sc vehicle.Scene, files []string) error {
	for _, fname := range files {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		rec, err := vehicle.ParseRecord(data)
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
		id := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
		if _, err := reg.Create(id, rec, sc); err != nil {
			return err
		}
	}
	return nil
}

type jsonPart struct {
	Part   string      `json:"part"`
	Space  string      `json:"space"`
	Matrix [16]float64 `json:"matrix"`

	// DualQuat holds real and dual part, each as w, x, y, z.
	DualQuat [8]float64 `json:"dual_quat"`
}

type jsonFrame struct {
	Frame    int                 `json:"frame"`
	Vehicle  string              `json:"vehicle"`
	Time     float64             `json:"t"`
	Steer    float64             `json:"steer_angle"`
	Roll     float64             `json:"roll_angle"`
	Speed    float64             `json:"speed"`
	Parts    map[string]jsonPart `json:"parts"`
	Finished bool                `json:"finished,omitempty"`
}

func evalCmd() *cobra.Command {
	var (
		fps     float64
		frames  int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "eval SCENE RECORD...",
		Short: "Print part poses for a range of animation frames",
		Long: `eval loads a scene description and one or more vehicle records, and
writes one JSON object per vehicle and frame to standard output.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger := golog.Logger(zap.NewNop().Sugar())
			if verbose {
				logger = golog.NewDevelopmentLogger("trackpose")
			}
			return runEval(ctx, logger, cmd.OutOrStdout(), args[0], args[1:], fps, frames)
		},
	}
	cmd.Flags().Float64Var(&fps, "fps", 24, "animation frames per second")
	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames (0 = until all vehicles have stopped)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	return cmd
}

func runEval(ctx context.Context, logger golog.Logger, w io.Writer, sceneFile string, recordFiles []string, fps float64, frames int) error {
	sc, err := loadScene(sceneFile)
	if err != nil {
		return err
	}
	reg := vehicle.NewRegistry(logger)
	if err := loadRecords(reg, sc, recordFiles); err != nil {
		return err
	}

	if frames <= 0 {
		var end float64
		for _, id := range reg.IDs() {
			h, _ := reg.Lookup(id)
			end = max(end, h.Model.EndTime()+h.Record.Config().TimeOffset)
		}
		frames = int(end*fps) + 1
	}

	enc := json.NewEncoder(w)
	for frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		poses, err := reg.Frame(frame, fps)
		if err != nil {
			return err
		}
		for _, id := range slices.Sorted(maps.Keys(poses)) {
			ps := poses[id]
			h, _ := reg.Lookup(id)
			out := jsonFrame{
				Frame:    frame,
				Vehicle:  id,
				Time:     ps.Time,
				Steer:    ps.SteerAngle,
				Roll:     ps.RollAngle,
				Speed:    ps.Speed,
				Parts:    make(map[string]jsonPart, len(ps.Parts)),
				Finished: ps.Time >= h.Model.EndTime(),
			}
			for role, pp := range ps.Parts {
				dq := pp.DualQuat()
				out.Parts[string(role)] = jsonPart{
					Part:     pp.Part,
					Space:    pp.Space.String(),
					Matrix:   pp.Matrix,
					DualQuat: [8]float64{dq.Real.Real, dq.Real.Imag, dq.Real.Jmag, dq.Real.Kmag, dq.Dual.Real, dq.Dual.Imag, dq.Dual.Jmag, dq.Dual.Kmag},
				}
			}
			if err := enc.Encode(out); err != nil {
				return err
			}
		}
	}
	return nil
}

func plotCmd() *cobra.Command {
	var (
		size   int
		frames int
	)
	cmd := &cobra.Command{
		Use:   "plot SCENE RECORD OUTPUT",
		Short: "Draw the path of one vehicle",
		Long: `plot draws the path, the rotation centers and a number of vehicle
footprints.  The output format is chosen by the file extension of OUTPUT,
which must be .pdf or .png.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop().Sugar()
			sc, err := loadScene(args[0])
			if err != nil {
				return err
			}
			reg := vehicle.NewRegistry(logger)
			if err := loadRecords(reg, sc, args[1:2]); err != nil {
				return err
			}
			h, _ := reg.Lookup(reg.IDs()[0])
			fig, err := plot.NewFigure(h.Model, frames)
			if err != nil {
				return err
			}
			return writeFigure(args[2], fig, size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 600, "image size in pixels or PDF points")
	cmd.Flags().IntVar(&frames, "frames", 24, "number of vehicle footprints")
	return cmd
}

func writeFigure(fname string, fig *plot.Figure, size int) error {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".pdf":
		return plot.WritePDF(fname, fig, nil, float64(size), float64(size))
	case ".png":
		f, err := os.Create(fname)
		if err != nil {
			return err
		}
		if err := plot.WritePNG(f, fig, size, size); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%s: unsupported output format", fname)
	}
}

func casesCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the built-in test tracks",
		Long: `cases prints length and duration of the built-in test tracks.  With
--out, a PNG plot of every track is written to the given directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
				for _, tc := range testcases.All[category] {
					name := category + "_" + tc.Name
					m, err := buildCase(tc, vehicle.FourWheel)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					fmt.Fprintf(w, "%-24s %8.1f m %6.1f s\n",
						name, m.Samples().TotalLength(), m.EndTime())
					if outDir == "" {
						continue
					}
					fig, err := plot.NewFigure(m, 24)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					if err := writeFigure(filepath.Join(outDir, name+".png"), fig, 400); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for track plots")
	return cmd
}

func buildCase(tc testcases.TestCase, kind vehicle.ModelKind) (vehicle.Animator, error) {
	sp, err := tc.Spline()
	if err != nil {
		return nil, err
	}
	cfg := vehicle.DefaultConfig()
	cfg.SpeedKmh = tc.SpeedKmh
	cfg.WheelRadius = tc.WheelRadius
	cfg.Resolution = tc.Resolution
	return vehicle.New(kind, sp, cfg, vehicle.NewRig(kind, tc.Name, tc.Wheelbase, tc.TrackWidth))
}
