// Copyright 2026 The cellframe Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host owns the device; accelerated backends receive it through
// Options.Device and never create one themselves. CPU backends ignore the
// handle entirely.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so that host
// applications built on the gpucontext ecosystem can pass their provider
// straight through.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle for hosts without GPU access. It
// satisfies the interface with nil resources; only CPU backends accept it.
type NullDeviceHandle struct{}

// Device returns nil; NullDeviceHandle has no GPU device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil; NullDeviceHandle has no command queue.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil; NullDeviceHandle has no adapter.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat reports no preferred format.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
