// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// When Config.Device is set, GPU backends render with the host's device
// instead of opening their own. The handle must also expose the HAL
// objects through HalDevice() any and HalQueue() any. Its SurfaceFormat,
// when defined, becomes the visible-pass color format.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device. It selects no
// surface format, so backends fall back to their defaults.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns TextureFormatUndefined.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}

// SurfaceFormat returns the visible-pass format requested by h, or
// fallback when h is nil or has no preference.
func SurfaceFormat(h DeviceHandle, fallback gputypes.TextureFormat) gputypes.TextureFormat {
	if h == nil {
		return fallback
	}
	if f := h.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return fallback
}
