// Package config loads ring animation settings from YAML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ringmotion/animation"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/curve"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/status"
	"github.com/lixenwraith/ringmotion/trajectory"
)

// ErrInvalidSettings reports a settings file that cannot drive an animator
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the on-disk configuration of a ring host
type Settings struct {
	Circle   CircleSettings `yaml:"circle"`
	Angles   AngleSettings  `yaml:"angles"`
	Elements int            `yaml:"elements"`
	Mode     string         `yaml:"mode"`
	Order    string         `yaml:"order"`
	Duration Duration       `yaml:"duration"`
	Delay    Duration       `yaml:"delay"`
	Curve    CurveSpec      `yaml:"curve"`
	Step     float64        `yaml:"step"`
	Wrap     string         `yaml:"wrap"`
	Log      string         `yaml:"log"`
	Audio    bool           `yaml:"audio"`
}

type CircleSettings struct {
	Center PointSettings `yaml:"center"`
	Radius float64       `yaml:"radius"`
}

type PointSettings struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AngleSettings struct {
	Source     float64 `yaml:"source"`
	Start      float64 `yaml:"start"`
	Sweep      float64 `yaml:"sweep"`
	FullCircle bool    `yaml:"full_circle"`
}

// Default returns settings for an eight element ring entering from the top
func Default() Settings {
	return Settings{
		Circle:   CircleSettings{Center: PointSettings{X: 40, Y: 24}, Radius: 16},
		Angles:   AngleSettings{Source: 270, Start: 0, Sweep: 360, FullCircle: true},
		Elements: 8,
		Mode:     trajectory.Enter.String(),
		Order:    animation.Natural.String(),
		Duration: Duration(parameter.DefaultDuration),
		Delay:    Duration(parameter.DefaultDelayUnit),
		Curve:    CurveSpec{Name: parameter.DefaultCurveName},
		Step:     parameter.StepDegrees,
		Wrap:     trajectory.WrapModulo.String(),
		Log:      "normal",
	}
}

// Load reads path over the defaults and verifies the result
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and verifies the result
// Unknown keys are rejected
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if err := s.Verify(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal encodes s as YAML
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Save writes s to path
func (s Settings) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Verify checks every field and that the layout can hold Elements
func (s Settings) Verify() error {
	var errs []error
	if s.Elements < 0 {
		errs = append(errs, fmt.Errorf("elements %d must not be negative", s.Elements))
	}
	if _, err := s.mode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.order(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.wrap(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(s.Log); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}

	opts, err := s.Options()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if err := s.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

func (s Settings) String() string {
	output := "\nRing settings\n"
	output += fmt.Sprintf("Circle: center (%g, %g) radius %g\n", s.Circle.Center.X, s.Circle.Center.Y, s.Circle.Radius)
	output += fmt.Sprintf("Angles: source %g start %g sweep %g full circle %t\n", s.Angles.Source, s.Angles.Start, s.Angles.Sweep, s.Angles.FullCircle)
	output += fmt.Sprintf("Elements: %d\n", s.Elements)
	output += fmt.Sprintf("Mode: %s Order: %s\n", s.Mode, s.Order)
	output += fmt.Sprintf("Duration: %v Delay: %v\n", time.Duration(s.Duration), time.Duration(s.Delay))
	output += fmt.Sprintf("Curve: %s\n", s.Curve)
	output += fmt.Sprintf("Step: %g Wrap: %s\n", s.Step, s.Wrap)
	output += fmt.Sprintf("Log: %s Audio: %t\n", s.Log, s.Audio)
	return output
}

// CircleValue returns the configured circle
func (s Settings) CircleValue() core.Circle {
	return core.Circle{
		Center: core.Point{X: s.Circle.Center.X, Y: s.Circle.Center.Y},
		Radius: s.Circle.Radius,
	}
}

// AngularValue returns the configured angular distribution
func (s Settings) AngularValue() trajectory.Angular {
	return trajectory.Angular{
		Source:     s.Angles.Source,
		Start:      s.Angles.Start,
		Sweep:      s.Angles.Sweep,
		FullCircle: s.Angles.FullCircle,
	}
}

// Params returns generator parameters for Elements elements
// Unknown mode or wrap names map to values Validate rejects
func (s Settings) Params() trajectory.Params {
	mode, err := s.mode()
	if err != nil {
		mode = trajectory.Mode(255)
	}
	wrap, err := s.wrap()
	if err != nil {
		wrap = trajectory.Wrap(255)
	}
	return trajectory.Params{
		Circle:  s.CircleValue(),
		Angular: s.AngularValue(),
		Count:   s.Elements,
		Mode:    mode,
		Step:    s.Step,
		Wrap:    wrap,
	}
}

// Options returns the animator defaults described by s
func (s Settings) Options() (animation.Options, error) {
	mode, err := s.mode()
	if err != nil {
		return animation.Options{}, err
	}
	order, err := s.order()
	if err != nil {
		return animation.Options{}, err
	}
	c, err := s.Curve.Resolve()
	if err != nil {
		return animation.Options{}, err
	}
	return animation.Options{
		Mode:      mode,
		Order:     order,
		Duration:  time.Duration(s.Duration),
		DelayUnit: time.Duration(s.Delay),
		Curve:     c,
	}, nil
}

// AnimatorConfig assembles an animation.Config; s must have been verified
func (s Settings) AnimatorConfig(logger *bslogger.Logger, reg *status.Registry, events *event.Queue) (animation.Config, error) {
	opts, err := s.Options()
	if err != nil {
		return animation.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	wrap, err := s.wrap()
	if err != nil {
		return animation.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return animation.Config{
		Circle:   s.CircleValue(),
		Angular:  s.AngularValue(),
		Step:     s.Step,
		Wrap:     wrap,
		Defaults: opts,
		Logger:   logger,
		Status:   reg,
		Events:   events,
	}, nil
}

func (s Settings) mode() (trajectory.Mode, error) {
	switch strings.ToLower(s.Mode) {
	case "enter", "":
		return trajectory.Enter, nil
	case "exit":
		return trajectory.Exit, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s.Mode)
}

func (s Settings) order() (animation.Order, error) {
	switch strings.ToLower(s.Order) {
	case "natural", "":
		return animation.Natural, nil
	case "reversed":
		return animation.Reversed, nil
	}
	return 0, fmt.Errorf("unknown order %q", s.Order)
}

func (s Settings) wrap() (trajectory.Wrap, error) {
	switch strings.ToLower(s.Wrap) {
	case "modulo", "":
		return trajectory.WrapModulo, nil
	case "legacy":
		return trajectory.WrapLegacy, nil
	}
	return 0, fmt.Errorf("unknown wrap %q", s.Wrap)
}

// Duration is a time.Duration written as a Go duration string
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// CurveSpec names a timing curve, gives bezier control points, or describes a spring
// Exactly one form is set
type CurveSpec struct {
	Name   string
	Bezier *BezierSpec
	Spring *SpringSpec
}

type BezierSpec struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

type SpringSpec struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// curveMapping is the mapping form of a curve in YAML
type curveMapping struct {
	X1     *float64    `yaml:"x1"`
	Y1     *float64    `yaml:"y1"`
	X2     *float64    `yaml:"x2"`
	Y2     *float64    `yaml:"y2"`
	Spring *SpringSpec `yaml:"spring"`
}

func (c *CurveSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = CurveSpec{Name: value.Value}
		return nil
	case yaml.MappingNode:
		var m curveMapping
		if err := value.Decode(&m); err != nil {
			return err
		}
		points := m.X1 != nil || m.Y1 != nil || m.X2 != nil || m.Y2 != nil
		switch {
		case points && m.Spring != nil:
			return fmt.Errorf("line %d: curve sets both control points and spring", value.Line)
		case m.Spring != nil:
			*c = CurveSpec{Spring: m.Spring}
		case m.X1 != nil && m.Y1 != nil && m.X2 != nil && m.Y2 != nil:
			*c = CurveSpec{Bezier: &BezierSpec{X1: *m.X1, Y1: *m.Y1, X2: *m.X2, Y2: *m.Y2}}
		default:
			return fmt.Errorf("line %d: curve needs x1, y1, x2 and y2 or a spring", value.Line)
		}
		return nil
	}
	return fmt.Errorf("line %d: curve must be a name or a mapping", value.Line)
}

func (c CurveSpec) MarshalYAML() (any, error) {
	switch {
	case c.Spring != nil:
		return map[string]*SpringSpec{"spring": c.Spring}, nil
	case c.Bezier != nil:
		return c.Bezier, nil
	}
	return c.Name, nil
}

// Resolve builds the curve
func (c CurveSpec) Resolve() (curve.Curve, error) {
	switch {
	case c.Spring != nil:
		return curve.Spring(c.Spring.Frequency, c.Spring.Damping)
	case c.Bezier != nil:
		return curve.Bezier(c.Bezier.X1, c.Bezier.Y1, c.Bezier.X2, c.Bezier.Y2)
	}
	named, ok := curve.Lookup(c.Name)
	if !ok {
		return curve.Curve{}, fmt.Errorf("%w: unknown curve %q (have %s)", curve.ErrInvalidCurve, c.Name, strings.Join(curve.Names(), ", "))
	}
	return named, nil
}

func (c CurveSpec) String() string {
	switch {
	case c.Spring != nil:
		return fmt.Sprintf("spring(%g,%g)", c.Spring.Frequency, c.Spring.Damping)
	case c.Bezier != nil:
		return fmt.Sprintf("cubic-bezier(%g,%g,%g,%g)", c.Bezier.X1, c.Bezier.Y1, c.Bezier.X2, c.Bezier.Y2)
	}
	return c.Name
}
