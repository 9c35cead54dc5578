// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor model used by svdcomm.
//
// Tensors are row-major arrays tagged with a data type and the compute device
// that owns them. Backends operate on tensors of their own device only.
//
// Example:
//
//	grad, err := tensor.FromFloat32(values, tensor.Shape{64, 32, 3, 3}, tensor.CPU)
//	if err != nil {
//	    return err
//	}
package tensor

import (
	"github.com/born-ml/svdcomm/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the tensor representation shared with backends.
type RawTensor = tensor.RawTensor

// Backend is the compute interface used by Encode and Decode.
type Backend = tensor.Backend

// Errors returned by tensor construction and backends.
var (
	ErrBadShape         = tensor.ErrBadShape
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrDeviceMismatch   = tensor.ErrDeviceMismatch
	ErrUnsupportedDType = tensor.ErrUnsupportedDType
	ErrNonFinite        = tensor.ErrNonFinite
	ErrNoConvergence    = tensor.ErrNoConvergence
)

// NewRaw creates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat32 creates a float32 tensor, copying data.
func FromFloat32(data []float32, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape, device)
}

// FromFloat64 creates a float64 tensor, copying data.
func FromFloat64(data []float64, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape, device)
}
