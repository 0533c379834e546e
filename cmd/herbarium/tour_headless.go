//go:build !cgo

package main

import (
	"context"
	"errors"
)

func runTour(_ context.Context, _ *env) error {
	return errors.New(`the interactive tour requires a cgo build with raylib; use "herbarium snapshot" or "herbarium serve" instead`)
}
