package calc

import (
	"fmt"
	"log/slog"
)

// Safe runs fn and returns its result, replacing any error or panic with
// fallback. The failure is logged exactly once under label and never
// propagates: one failing metric must not take down the panel next to it.
func Safe[T any](logger *slog.Logger, label string, fallback T, fn func() (T, error)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("calculation panicked", "label", label, "panic", r)
			out = fallback
		}
	}()
	v, err := fn()
	if err != nil {
		logger.Error("calculation failed", "label", label, "err", err)
		return fallback
	}
	return v
}

// Batch evaluates every thunk independently through Safe and returns a map
// keyed identically to calcs. A missing fallback for a failing key leaves the
// zero value in place.
func Batch[T any](logger *slog.Logger, calcs map[string]func() (T, error), fallbacks map[string]T) map[string]T {
	out := make(map[string]T, len(calcs))
	for key, fn := range calcs {
		out[key] = Safe(logger, key, fallbacks[key], fn)
	}
	return out
}

// ValidateInputs is the loud counterpart to Safe: a boundary precondition
// check for programmer-error-class problems. It reports how many items failed
// rather than silently falling back.
func ValidateInputs[T any](items []T, pred func(T) bool, msg string) error {
	if pred == nil {
		return fmt.Errorf("calc: %s: nil predicate", msg)
	}
	failed := 0
	for _, item := range items {
		if !pred(item) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("calc: %s: %d of %d inputs invalid", msg, failed, len(items))
	}
	return nil
}
