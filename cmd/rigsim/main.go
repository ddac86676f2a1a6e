package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/levels"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/rig"
	"github.com/milk9111/rigcam/scene"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		noColor   bool
		prefabDir string
	)

	root := &cobra.Command{
		Use:           "rigsim",
		Short:         "Run camera rig scenes headless",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = zerolog.New(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: time.TimeOnly,
				NoColor:    noColor,
			}).With().Timestamp().Logger()
			if prefabDir != "" {
				prefabs.Dir = prefabDir
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored logs")
	root.PersistentFlags().StringVar(&prefabDir, "prefabs", "", "directory of prefab overrides")

	root.AddCommand(newRunCmd(), newProbesCmd(), newLevelsCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		level  string
		frames int
		dt     float64
		every  int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a level and print the camera pose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}
			if dt <= 0 {
				return fmt.Errorf("dt must be positive, got %v", dt)
			}
			if every <= 0 {
				every = 1
			}

			s, err := scene.Load(level)
			if err != nil {
				return err
			}
			s.World.AddSystem(eventLogger{})

			out := cmd.OutOrStdout()
			printHeader(out)
			for i := 1; i <= frames; i++ {
				s.Step(dt)
				if i%every != 0 && i != frames {
					continue
				}
				pose, frame, ok := s.CameraPose()
				if !ok {
					return fmt.Errorf("level %s has no camera rig", level)
				}
				printPose(out, i, s.World.Time(), pose, frame)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&level, "level", "courtyard", "level to load")
	cmd.Flags().IntVar(&frames, "frames", 600, "number of frames to simulate")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per frame")
	cmd.Flags().IntVar(&every, "every", 30, "print every n frames")
	return cmd
}

func printHeader(w io.Writer) {
	fmt.Fprintf(w, "%6s %8s %26s %26s %5s %s\n", "frame", "time", "position", "euler", "hits", "mode")
}

func printPose(w io.Writer, n int, t float64, pose rig.Pose, frame rig.Frame) {
	euler := quatToEuler(pose.Rotation)
	fmt.Fprintf(w, "%6d %8.3f %26s %26s %5d %s\n",
		n, t, vec(pose.Position), vec(euler), frame.Correction.Hits, mode(frame))
}

func mode(frame rig.Frame) string {
	switch {
	case !frame.Avoided:
		return "free"
	case frame.Correction.Anchored:
		return "anchored"
	default:
		return "self"
	}
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%7.3f %7.3f %7.3f)", v[0], v[1], v[2])
}

// quatToEuler returns pitch, yaw and roll in degrees for the order used by
// common.EulerToQuat.
func quatToEuler(q mgl32.Quat) mgl32.Vec3 {
	f := q.Rotate(common.AxisZ)
	u := q.Rotate(common.AxisY)
	yaw := mgl32.RadToDeg(float32(math.Atan2(float64(f[0]), float64(f[2]))))
	pitch := mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(-f[1], -1, 1)))))
	level := common.EulerToQuat(mgl32.Vec3{pitch, yaw, 0})
	lu := level.Rotate(common.AxisY)
	lr := level.Rotate(common.AxisX)
	roll := mgl32.RadToDeg(float32(math.Atan2(float64(-u.Dot(lr)), float64(u.Dot(lu)))))
	return mgl32.Vec3{pitch, yaw, roll}
}

func newProbesCmd() *cobra.Command {
	var (
		near, fov, aspect float32
		rotation          []float32
	)

	cmd := &cobra.Command{
		Use:   "probes",
		Short: "Print the near-plane probe offsets for a lens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if near <= 0 || fov <= 0 || aspect <= 0 {
				return fmt.Errorf("near, fov and aspect must be positive")
			}
			axes := rig.Pose{Rotation: common.EulerToQuat(prefabs.Vec3(rotation, mgl32.Vec3{}))}
			probes := rig.FrustumProbes(rig.Lens{Near: near, FovY: fov, Aspect: aspect}, axes)
			out := cmd.OutOrStdout()
			for i, p := range probes {
				fmt.Fprintf(out, "%d %s %7.4f\n", i, vec(p), p.Len())
			}
			return nil
		},
	}
	def := rig.DefaultLens()
	cmd.Flags().Float32Var(&near, "near", def.Near, "near clip distance")
	cmd.Flags().Float32Var(&fov, "fov", def.FovY, "vertical field of view in degrees")
	cmd.Flags().Float32Var(&aspect, "aspect", def.Aspect, "width over height")
	cmd.Flags().Float32SliceVar(&rotation, "rotation", nil, "camera euler angles in degrees: pitch,yaw,roll")
	return cmd
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the built-in levels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range levels.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// eventLogger logs rig events before the world drops them.
type eventLogger struct{}

func (eventLogger) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		re, ok := evt.Data.(ecs.RigEvent)
		if !ok {
			continue
		}
		ev := log.Debug()
		if re.Kind == ecs.RigEventParamChanged {
			ev = log.Info()
		}
		ev.Uint64("frame", w.Frame()).
			Str("entity", re.Entity.String()).
			Str("source", re.Source).
			Msg(string(re.Kind))
	}
}
