//go:build purego

package kernel

// Kernels are excluded from purego builds.
const compiled = false
