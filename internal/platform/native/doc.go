// Package native registers the cross-platform backend built on robotgo,
// kbinani/screenshot, gopsutil, and gosseract. The whole backend needs
// cgo; without it this package compiles empty, no provider registers,
// and platform.NewProvider reports the platform as unsupported.
package native
