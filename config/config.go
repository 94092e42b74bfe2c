// Package config reads and writes ocean presets as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/massymassy/gosea/camera"
	"github.com/massymassy/gosea/params"
	"gopkg.in/yaml.v3"
)

// Preset is a saved look: camera height plus parameter values. Scalars are
// numbers, vec2 values are two-element lists and colors are "#rrggbb" strings.
type Preset struct {
	CameraHeight float64        `yaml:"camera_height"`
	Parameters   map[string]any `yaml:"parameters"`
}

func Default() *Preset {
	return FromStore(params.NewOceanStore(), camera.DefaultHeight)
}

func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &Preset{CameraHeight: camera.DefaultHeight}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p *Preset) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FromStore captures the current value of every parameter except time.
func FromStore(store *params.Store, cameraHeight float64) *Preset {
	p := &Preset{CameraHeight: cameraHeight, Parameters: make(map[string]any)}
	for name, v := range store.Snapshot() {
		if name == params.Time {
			continue
		}
		switch v.Kind() {
		case params.KindVec2:
			xy := v.Vec2()
			p.Parameters[name] = []float64{round32(xy[0]), round32(xy[1])}
		case params.KindColor:
			p.Parameters[name] = v.Hex()
		default:
			p.Parameters[name] = round32(v.Float())
		}
	}
	return p
}

// Apply sets every parameter in the preset on store. All entries are attempted;
// the returned error joins the ones that failed.
func (p *Preset) Apply(store *params.Store) error {
	names := make([]string, 0, len(p.Parameters))
	for name := range p.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		v, err := decode(p.Parameters[name])
		if err == nil {
			_, err = store.Set(name, v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("parameter %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func decode(raw any) (params.Value, error) {
	switch v := raw.(type) {
	case string:
		return params.Hex(v)
	case []any:
		if len(v) != 2 {
			return params.Value{}, fmt.Errorf("want 2 components, got %d", len(v))
		}
		x, err := number(v[0])
		if err != nil {
			return params.Value{}, err
		}
		y, err := number(v[1])
		if err != nil {
			return params.Value{}, err
		}
		return params.Vec2(x, y), nil
	case []float64:
		if len(v) != 2 {
			return params.Value{}, fmt.Errorf("want 2 components, got %d", len(v))
		}
		return params.Vec2(float32(v[0]), float32(v[1])), nil
	default:
		f, err := number(raw)
		if err != nil {
			return params.Value{}, err
		}
		return params.Scalar(f), nil
	}
}

func number(raw any) (float32, error) {
	switch n := raw.(type) {
	case int:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

// round32 drops the float32 noise so 0.38 is written as 0.38.
func round32(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}
