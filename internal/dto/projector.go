package dto

import "fmt"

// Projector turns a handler result into its outward shape.
type Projector interface {
	Project(v any) (any, error)
}

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc func(v any) (any, error)

func (f ProjectorFunc) Project(v any) (any, error) { return f(v) }

// For builds a Projector from a single-entity mapping. The result accepts
// E, *E, []E and []*E, so one route config covers both single and
// collection responses. Nil slices project to an empty slice; any other
// type is an error rather than being passed through unfiltered.
func For[E any, D any](fn func(E) D) Projector {
	return ProjectorFunc(func(v any) (any, error) {
		switch x := v.(type) {
		case E:
			return fn(x), nil
		case *E:
			if x == nil {
				return nil, fmt.Errorf("dto: nil %T", x)
			}
			return fn(*x), nil
		case []E:
			out := make([]D, 0, len(x))
			for _, e := range x {
				out = append(out, fn(e))
			}
			return out, nil
		case []*E:
			out := make([]D, 0, len(x))
			for _, e := range x {
				if e == nil {
					continue
				}
				out = append(out, fn(*e))
			}
			return out, nil
		default:
			return nil, fmt.Errorf("dto: cannot project %T", v)
		}
	})
}

// Identity passes results through unchanged. Use only for values that are
// already outward shapes.
var Identity Projector = ProjectorFunc(func(v any) (any, error) { return v, nil })
