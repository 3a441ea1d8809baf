package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/loader"
	"github.com/cwbudde/gosplat/internal/pipeline"
	"github.com/cwbudde/gosplat/internal/primitive"
	"github.com/spf13/cobra"
)

var (
	renderInput      string
	renderOut        string
	renderWidth      int
	renderHeight     int
	renderFovX       float64
	renderPose       []string
	renderSynthetic  int
	renderCPUProfile string
	renderMemProfile string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single frame from a PLY scene on one process",
	Long:  `Loads a binary_little_endian PLY Gaussian splat scene and writes a rendered PNG.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderInput, "in", "", "Input PLY scene path")
	renderCmd.Flags().StringVar(&renderOut, "out", "out.png", "Output image path")
	renderCmd.Flags().IntVar(&renderWidth, "width", 800, "Output image width")
	renderCmd.Flags().IntVar(&renderHeight, "height", 600, "Output image height")
	renderCmd.Flags().Float64Var(&renderFovX, "fov-x", 1.0, "Horizontal field of view in radians")
	renderCmd.Flags().StringArrayVar(&renderPose, "pose", nil, "Camera pose operation, applied in order: tilt:<rad>, pan:<rad>, roll:<rad>, move:<x>,<y>,<z>")
	renderCmd.Flags().IntVar(&renderSynthetic, "synthetic", 0, "Render a deterministic N-Gaussian synthetic scene instead of --in")
	renderCmd.Flags().StringVar(&renderCPUProfile, "cpuprofile", "", "Write CPU profile to file")
	renderCmd.Flags().StringVar(&renderMemProfile, "memprofile", "", "Write memory profile to file")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderCPUProfile != "" {
		f, err := os.Create(renderCPUProfile)
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		slog.Info("CPU profiling enabled", "output", renderCPUProfile)
	}

	store, err := loadStore(renderInput, renderSynthetic)
	if err != nil {
		return err
	}

	cam := camera.New(renderWidth, renderHeight, float32(renderFovX))
	if err := applyPose(cam, renderPose); err != nil {
		return err
	}

	start := time.Now()
	fb := pipeline.RenderFrame(cam, store)
	elapsed := time.Since(start)

	buf := &byteSink{}
	if err := fb.WriteRaw(buf); err != nil {
		return fmt.Errorf("encode framebuffer: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, fb.W, fb.H))
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			i := (y*fb.W + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{R: buf.data[i], G: buf.data[i+1], B: buf.data[i+2], A: 255})
		}
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", renderOut, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", renderOut, err)
	}

	slog.Info("render complete", "elapsed", elapsed, "primitives", store.Len())
	fmt.Printf("Wrote %s (%dx%d, %d primitives, %s)\n", renderOut, renderWidth, renderHeight, store.Len(), elapsed.Round(time.Millisecond))

	if renderMemProfile != "" {
		f, err := os.Create(renderMemProfile)
		if err != nil {
			return fmt.Errorf("create memory profile: %w", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("write memory profile: %w", err)
		}
		slog.Info("memory profile written", "output", renderMemProfile)
	}

	return nil
}

// loadStore opens a PLY file or, when synthetic > 0, builds a
// deterministic synthetic scene instead.
func loadStore(path string, synthetic int) (*primitive.Store, error) {
	if synthetic > 0 {
		slog.Info("generating synthetic scene", "primitives", synthetic)
		return primitive.Synthetic(synthetic, 42), nil
	}
	if path == "" {
		return nil, fmt.Errorf("either --in or --synthetic is required")
	}

	slog.Info("loading scene", "path", path)
	src, err := loader.OpenPLY(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	slog.Info("loaded scene", "vertices", src.Count())

	store, err := pipeline.LoadAll(src)
	if err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}
	return store, nil
}

// applyPose runs a sequence of tilt/pan/roll/move pose operations against
// cam, in order.
func applyPose(cam *camera.Camera, ops []string) error {
	for _, op := range ops {
		kind, arg, ok := strings.Cut(op, ":")
		if !ok {
			return fmt.Errorf("malformed --pose %q, expected kind:value", op)
		}
		switch kind {
		case "tilt", "pan", "roll":
			rad, err := strconv.ParseFloat(arg, 32)
			if err != nil {
				return fmt.Errorf("--pose %q: %w", op, err)
			}
			switch kind {
			case "tilt":
				cam.Tilt(float32(rad))
			case "pan":
				cam.Pan(float32(rad))
			case "roll":
				cam.Roll(float32(rad))
			}
		case "move":
			parts := strings.Split(arg, ",")
			if len(parts) != 3 {
				return fmt.Errorf("--pose %q: move requires x,y,z", op)
			}
			var v linalg.Vec3
			for i, p := range parts {
				f, err := strconv.ParseFloat(p, 32)
				if err != nil {
					return fmt.Errorf("--pose %q: %w", op, err)
				}
				v[i] = float32(f)
			}
			cam.MoveTo(v)
		default:
			return fmt.Errorf("--pose %q: unknown operation %q", op, kind)
		}
	}
	return nil
}

// byteSink is a minimal io.Writer sink, mirroring the one
// internal/distributed and internal/monitor each keep locally rather
// than share a one-line helper across package boundaries.
type byteSink struct{ data []byte }

func (b *byteSink) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
