package board

import (
	"fmt"
	"strconv"
	"strings"
)

// AimPoint is a named target on the board.
type AimPoint struct {
	Name  string `json:"name" yaml:"name"`
	Point Point  `json:"point" yaml:"point"`
}

const (
	Bullseye = "bullseye"

	treblePrefix = "treble_"
	doublePrefix = "double_"
)

// defaultAims is built once at init and never mutated; accessors hand out
// copies.
var defaultAims = func() []AimPoint {
	aims := []AimPoint{{Name: Bullseye}}
	for n := 20; n >= 14; n-- {
		p, err := TrebleCenter(n)
		if err != nil {
			panic(err)
		}
		aims = append(aims, AimPoint{Name: treblePrefix + strconv.Itoa(n), Point: p})
	}
	return aims
}()

// AimPoints returns the standard targets: the bullseye followed by the
// treble 20 down to the treble 14.
func AimPoints() []AimPoint {
	out := make([]AimPoint, len(defaultAims))
	copy(out, defaultAims)
	return out
}

// AimNames returns the names of [AimPoints] in order.
func AimNames() []string {
	names := make([]string, len(defaultAims))
	for i, a := range defaultAims {
		names[i] = a.Name
	}
	return names
}

// LookupAim resolves "bullseye", "treble_N" or "double_N" for any sector N.
func LookupAim(name string) (AimPoint, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == Bullseye {
		return AimPoint{Name: Bullseye}, nil
	}

	var center func(int) (Point, error)
	var num string
	switch {
	case strings.HasPrefix(key, treblePrefix):
		center, num = TrebleCenter, strings.TrimPrefix(key, treblePrefix)
	case strings.HasPrefix(key, doublePrefix):
		center, num = DoubleCenter, strings.TrimPrefix(key, doublePrefix)
	default:
		return AimPoint{}, fmt.Errorf("unknown aim point: %s", name)
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return AimPoint{}, fmt.Errorf("unknown aim point: %s", name)
	}
	p, err := center(n)
	if err != nil {
		return AimPoint{}, fmt.Errorf("unknown aim point %s: %w", name, err)
	}
	return AimPoint{Name: key, Point: p}, nil
}

// LookupAims resolves a list of names, failing on the first unknown one.
func LookupAims(names []string) ([]AimPoint, error) {
	aims := make([]AimPoint, 0, len(names))
	for _, name := range names {
		a, err := LookupAim(name)
		if err != nil {
			return nil, err
		}
		aims = append(aims, a)
	}
	return aims, nil
}
