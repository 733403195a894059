package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/wgpu/core"
	types "github.com/gogpu/gputypes"

	mrv2 "github.com/Thane5/mrv2"
)

// GPUInfo describes the selected adapter.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType types.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend types.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

func getGPUInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("wgpu: get adapter info: %w", err)
	}
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

func logGPUInfo(adapterID core.AdapterID) {
	info, err := getGPUInfo(adapterID)
	if err != nil {
		mrv2.Logger().Warn("wgpu adapter info unavailable", slog.Any("error", err))
		return
	}
	mrv2.Logger().Info("wgpu adapter selected",
		slog.String("gpu", info.String()), slog.String("driver", info.Driver))
}

// createDevice creates a logical device from an adapter.
func createDevice(adapterID core.AdapterID, label string) (core.DeviceID, error) {
	desc := &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}
	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("wgpu: create device: %w", err)
	}
	return deviceID, nil
}

func getDeviceQueue(deviceID core.DeviceID) (core.QueueID, error) {
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return core.QueueID{}, fmt.Errorf("wgpu: get device queue: %w", err)
	}
	return queueID, nil
}

func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("wgpu: release device: %w", err)
	}
	return nil
}

// Device bundles the adapter, logical device and queue of one viewport
// window. It is created when the window's GPU context comes up and destroyed
// on hide, matching the viewport's Invalid state transitions.
type Device struct {
	adapter core.AdapterID
	device  core.DeviceID
	queue   core.QueueID
}

// NewDevice builds the logical device and queue on the given adapter.
func NewDevice(adapterID core.AdapterID) (*Device, error) {
	logGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "mrv2_viewport")
	if err != nil {
		return nil, err
	}
	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return nil, err
	}
	return &Device{adapter: adapterID, device: deviceID, queue: queueID}, nil
}

// Close releases the logical device. The adapter is owned by the caller.
func (d *Device) Close() error {
	return releaseDevice(d.device)
}
