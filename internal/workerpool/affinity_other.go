//go:build !linux

package workerpool

// PinToCPU is a no-op outside linux; CPU affinity has no portable API.
func PinToCPU(cpu int) error { return nil }
