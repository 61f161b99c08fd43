//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Vulkan backend for devices the renderer opens itself.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var (
	// ErrNoAdapter is returned when no GPU adapter is found.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
	// ErrNotHALProvider is returned when a device provider does not expose
	// HAL objects.
	ErrNotHALProvider = errors.New("gpu: provider does not expose HAL types")
)

// halProvider is implemented by device providers that can hand out the
// underlying HAL device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts the HAL device and queue from a host provider.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}
	return device, queue, nil
}

// openDevice opens a device on the first discrete or integrated Vulkan
// adapter, falling back to the first adapter of any kind.
func openDevice() (hal.Instance, hal.Device, hal.Queue, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("gpu: adapter selected", "name", selected.Info.Name)
	return instance, openDev.Device, openDev.Queue, nil
}
