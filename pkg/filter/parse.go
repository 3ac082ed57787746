package filter

import (
	"strconv"
	"strings"

	"github.com/matzehuels/linetrace/pkg/errors"
)

// Default parameters used when a filter spec names a filter without an
// argument ("chaikin" instead of "chaikin=2").
const (
	DefaultDecimateTolerance = 2.0
	DefaultSmoothWindow      = 5
	DefaultChaikinIterations = 2
	DefaultSimplifyEpsilon   = 1.2
	DefaultSavGolWindow      = 7
	DefaultSavGolOrder       = 2
	DefaultSplinePoints      = 200
)

// Parse builds a Chain from a comma separated filter spec such as
// "decimate=2,smooth=5,chaikin=2,simplify=1.2". Recognized names are
// decimate, smooth, chaikin, simplify, savgol (argument "window" or
// "window:order") and spline. An empty spec or "none" yields a nil chain.
// Unknown names and unparseable arguments return an INVALID_FILTER error.
func Parse(spec string) (Chain, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return nil, nil
	}

	var chain Chain
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, arg, _ := strings.Cut(part, "=")
		f, err := build(strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(arg))
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}

func build(name, arg string) (Filter, error) {
	switch name {
	case "decimate":
		tol, err := floatArg(name, arg, DefaultDecimateTolerance)
		if err != nil {
			return nil, err
		}
		return Decimate{Tolerance: tol}, nil

	case "smooth":
		w, err := intArg(name, arg, DefaultSmoothWindow)
		if err != nil {
			return nil, err
		}
		return MovingAverage{Window: w}, nil

	case "chaikin":
		n, err := intArg(name, arg, DefaultChaikinIterations)
		if err != nil {
			return nil, err
		}
		return Chaikin{Iterations: n}, nil

	case "simplify":
		eps, err := floatArg(name, arg, DefaultSimplifyEpsilon)
		if err != nil {
			return nil, err
		}
		return Simplify{Epsilon: eps}, nil

	case "savgol":
		winArg, orderArg, hasOrder := strings.Cut(arg, ":")
		w, err := intArg(name, winArg, DefaultSavGolWindow)
		if err != nil {
			return nil, err
		}
		order := DefaultSavGolOrder
		if hasOrder {
			if order, err = intArg(name, orderArg, DefaultSavGolOrder); err != nil {
				return nil, err
			}
		}
		return SavitzkyGolay{Window: w, Order: order}, nil

	case "spline":
		n, err := intArg(name, arg, DefaultSplinePoints)
		if err != nil {
			return nil, err
		}
		return SplineResample{Points: n}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFilter, "unknown filter %q", name)
}

func floatArg(name, arg string, def float64) (float64, error) {
	if arg == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFilter, "filter %s: bad argument %q", name, arg)
	}
	return v, nil
}

func intArg(name, arg string, def int) (int, error) {
	if arg == "" {
		return def, nil
	}
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFilter, "filter %s: bad argument %q", name, arg)
	}
	return v, nil
}
