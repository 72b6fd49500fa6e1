//go:build !purego

package kernel

const compiled = true
