package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/rig"
	"github.com/rs/zerolog"
)

const directorDispatchScript = `
update(__engine, __state)
`

type directorRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

func compileDirector(path string, src []byte) (*directorRuntime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + directorDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("director %s: compile: %w", path, err)
	}
	return &directorRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *directorRuntime) run(engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil director runtime")
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// directorEdit collects what a script run asked to change. Nothing is applied
// until the script returns.
type directorEdit struct {
	cr      component.CameraRig
	changed bool
}

func (d *directorEdit) setMode(kind string, name string) bool {
	switch kind {
	case "position_mode":
		m, err := rig.ParsePositionMode(name)
		if err != nil {
			return false
		}
		d.changed = d.changed || m != d.cr.Param.PositionMode
		d.cr.Param.PositionMode = m
	case "rotation_mode":
		m, err := rig.ParseRotationMode(name)
		if err != nil {
			return false
		}
		d.changed = d.changed || m != d.cr.Param.RotationMode
		d.cr.Param.RotationMode = m
	case "position_homing":
		m, err := rig.ParseHomingMode(name)
		if err != nil {
			return false
		}
		d.changed = d.changed || m != d.cr.Param.PositionHoming
		d.cr.Param.PositionHoming = m
	case "rotation_homing":
		m, err := rig.ParseHomingMode(name)
		if err != nil {
			return false
		}
		d.changed = d.changed || m != d.cr.Param.RotationHoming
		d.cr.Param.RotationHoming = m
	default:
		return false
	}
	return true
}

func (d *directorEdit) setName(field *string, name string) {
	if *field != name {
		*field = name
		d.changed = true
	}
}

func buildDirectorEngine(w *ecs.World, edit *directorEdit, logger zerolog.Logger) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"time": &tengo.Float{Value: w.Time()},
		"dt":   &tengo.Float{Value: w.DeltaTime()},
	}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		pos, ok := namedPosition(w, objectAsString(args[0]))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: float64(pos[0])},
			&tengo.Float{Value: float64(pos[1])},
			&tengo.Float{Value: float64(pos[2])},
		}}, nil
	}}

	values["distance"] = &tengo.UserFunction{Name: "distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return &tengo.Float{Value: -1}, nil
		}
		a, okA := namedPosition(w, objectAsString(args[0]))
		b, okB := namedPosition(w, objectAsString(args[1]))
		if !okA || !okB {
			return &tengo.Float{Value: -1}, nil
		}
		return &tengo.Float{Value: float64(a.Sub(b).Len())}, nil
	}}

	values["param"] = &tengo.UserFunction{Name: "param", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := edit.cr.Param
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"position_mode":   &tengo.String{Value: p.PositionMode.String()},
			"rotation_mode":   &tengo.String{Value: p.RotationMode.String()},
			"position_homing": &tengo.String{Value: p.PositionHoming.String()},
			"rotation_homing": &tengo.String{Value: p.RotationHoming.String()},
			"auto_avoid":      boolObject(p.AutoAvoid),
			"station":         &tengo.String{Value: edit.cr.StationName},
			"target":          &tengo.String{Value: edit.cr.TargetName},
			"gaze":            &tengo.String{Value: edit.cr.GazeName},
		}}, nil
	}}

	for _, kind := range []string{"position_mode", "rotation_mode", "position_homing", "rotation_homing"} {
		kind := kind
		values[kind] = &tengo.UserFunction{Name: kind, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			name := strings.TrimSpace(objectAsString(args[0]))
			if !edit.setMode(kind, name) {
				logger.Warn().Str(kind, name).Msg("director: unknown mode")
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}}
	}

	values["avoid"] = &tengo.UserFunction{Name: "avoid", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		on := !args[0].IsFalsy()
		if on != edit.cr.Param.AutoAvoid {
			edit.cr.Param.AutoAvoid = on
			edit.changed = true
		}
		return tengo.TrueValue, nil
	}}

	names := map[string]*string{
		"station": &edit.cr.StationName,
		"target":  &edit.cr.TargetName,
		"gaze":    &edit.cr.GazeName,
	}
	for fn, field := range names {
		field := field
		values[fn] = &tengo.UserFunction{Name: fn, Value: func(args ...tengo.Object) (tengo.Object, error) {
			name := ""
			if len(args) > 0 {
				name = strings.TrimSpace(objectAsString(args[0]))
			}
			edit.setName(field, name)
			return tengo.TrueValue, nil
		}}
	}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		logger.Info().Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func namedPosition(w *ecs.World, name string) (mgl32.Vec3, bool) {
	e, ok := entity.FindByName(w, name)
	if !ok {
		return mgl32.Vec3{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl32.Vec3{}, false
	}
	return t.Position, true
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
