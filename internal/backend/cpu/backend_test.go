package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/svdcomm/internal/parallel"
	"github.com/born-ml/svdcomm/internal/tensor"
)

// Helper to check float64 slices are equal within epsilon.
func float64SliceEqual(a, b []float64, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func mustFloat64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat64(data, shape, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}
	return raw
}

func mustIndex(t *testing.T, idx ...int64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromInt64(idx, tensor.Shape{len(idx)}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	return raw
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}

// TestCPUBackend_MatMul tests 2D matrix multiplication for both float types.
func TestCPUBackend_MatMul(t *testing.T) {
	backend := New()

	t.Run("Float64", func(t *testing.T) {
		a := mustFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		b := mustFloat64(t, []float64{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

		result := backend.MatMul(a, b)
		expected := []float64{58, 64, 139, 154}
		if !result.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("Expected shape [2 2], got %v", result.Shape())
		}
		if !float64SliceEqual(result.AsFloat64(), expected, 1e-12) {
			t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
		}
	})

	t.Run("Float32", func(t *testing.T) {
		a, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
		b, _ := tensor.FromFloat32([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, tensor.CPU)

		result := backend.MatMul(a, b)
		expected := []float64{19, 22, 43, 50}
		if !float64SliceEqual(result.Float64s(), expected, 1e-6) {
			t.Errorf("Expected %v, got %v", expected, result.AsFloat32())
		}
	})

	t.Run("ParallelMatchesSequential", func(t *testing.T) {
		m, k, n := 67, 13, 29
		aData := make([]float64, m*k)
		bData := make([]float64, k*n)
		for i := range aData {
			aData[i] = math.Sin(float64(i))
		}
		for i := range bData {
			bData[i] = math.Cos(float64(i))
		}
		a := mustFloat64(t, aData, tensor.Shape{m, k})
		b := mustFloat64(t, bData, tensor.Shape{k, n})

		par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4}).MatMul(a, b)
		seq := NewWithConfig(parallel.Sequential()).MatMul(a, b)
		if !float64SliceEqual(par.AsFloat64(), seq.AsFloat64(), 1e-12) {
			t.Error("parallel and sequential results differ")
		}
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		a := mustFloat64(t, make([]float64, 6), tensor.Shape{2, 3})
		expectPanic(t, "matmul", func() { backend.MatMul(a, a) })
	})
}

// TestCPUBackend_Transpose tests 2D transpose.
func TestCPUBackend_Transpose(t *testing.T) {
	backend := New()
	x := mustFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(x)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Expected shape [3 2], got %v", result.Shape())
	}
	expected := []float64{1, 4, 2, 5, 3, 6}
	if !float64SliceEqual(result.AsFloat64(), expected, 0) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
	}
}

// TestCPUBackend_LowRank tests U·diag(S)·Vᵗ against hand-computed values.
func TestCPUBackend_LowRank(t *testing.T) {
	backend := New()
	u := mustFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	s := mustFloat64(t, []float64{2, 0.5}, tensor.Shape{2})
	v := mustFloat64(t, []float64{1, 0, 0, 1, 1, 1, 2, -1}, tensor.Shape{4, 2})

	result := backend.LowRank(u, s, v)
	if !result.Shape().Equal(tensor.Shape{3, 4}) {
		t.Fatalf("Expected shape [3 4], got %v", result.Shape())
	}

	// U·diag(S) = [[2 1] [6 2] [10 3]].
	expected := []float64{
		2, 1, 3, 3,
		6, 2, 8, 10,
		10, 3, 13, 17,
	}
	if !float64SliceEqual(result.AsFloat64(), expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
	}
	if got := u.AsFloat64(); got[0] != 1 || got[5] != 6 {
		t.Errorf("LowRank modified U: %v", got)
	}

	expectPanic(t, "rank mismatch", func() {
		backend.LowRank(u, mustFloat64(t, []float64{1}, tensor.Shape{1}), v)
	})
}

// TestCPUBackend_Select tests column and entry gathering.
func TestCPUBackend_Select(t *testing.T) {
	backend := New()

	t.Run("Columns", func(t *testing.T) {
		x := mustFloat64(t, []float64{
			1, 2, 3, 4,
			5, 6, 7, 8,
		}, tensor.Shape{2, 4})

		result := backend.SelectColumns(x, mustIndex(t, 0, 3))
		expected := []float64{1, 4, 5, 8}
		if !result.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("Expected shape [2 2], got %v", result.Shape())
		}
		if !float64SliceEqual(result.AsFloat64(), expected, 0) {
			t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
		}
	})

	t.Run("Entries", func(t *testing.T) {
		x := mustFloat64(t, []float64{10, 20, 30}, tensor.Shape{3})
		result := backend.Select(x, mustIndex(t, 2, 0))
		expected := []float64{30, 10}
		if !float64SliceEqual(result.AsFloat64(), expected, 0) {
			t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		x := mustFloat64(t, []float64{10, 20, 30}, tensor.Shape{3})
		expectPanic(t, "select", func() { backend.Select(x, mustIndex(t, 3)) })
	})

	t.Run("IndexOnOtherDevice", func(t *testing.T) {
		x := mustFloat64(t, []float64{10, 20, 30}, tensor.Shape{3})
		idx, _ := tensor.FromInt64([]int64{0}, tensor.Shape{1}, tensor.CUDA)
		expectPanic(t, "select", func() { backend.Select(x, idx) })
	})
}

// TestCPUBackend_Narrow tests leading-slice selection.
func TestCPUBackend_Narrow(t *testing.T) {
	backend := New()
	x := mustFloat64(t, []float64{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3})

	result := backend.Narrow(x, 2)
	expected := []float64{1, 2, 4, 5}
	if !float64SliceEqual(result.AsFloat64(), expected, 0) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
	}

	clamped := backend.Narrow(x, 10)
	if !clamped.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Expected clamp to [2 3], got %v", clamped.Shape())
	}

	vec := backend.Narrow(mustFloat64(t, []float64{7, 8, 9}, tensor.Shape{3}), 1)
	if !float64SliceEqual(vec.AsFloat64(), []float64{7}, 0) {
		t.Errorf("Expected [7], got %v", vec.AsFloat64())
	}
}

// TestCPUBackend_Div tests element-wise division.
func TestCPUBackend_Div(t *testing.T) {
	backend := New()
	a := mustFloat64(t, []float64{1, 4, 9}, tensor.Shape{3})
	b := mustFloat64(t, []float64{1, 2, 0.5}, tensor.Shape{3})

	result := backend.Div(a, b)
	expected := []float64{1, 2, 18}
	if !float64SliceEqual(result.AsFloat64(), expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat64())
	}
}

// TestCPUBackend_Reshape tests zero-copy reshape.
func TestCPUBackend_Reshape(t *testing.T) {
	backend := New()
	x := mustFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Reshape(x, tensor.Shape{3, 2, 1})
	if !result.Shape().Equal(tensor.Shape{3, 2, 1}) {
		t.Errorf("Expected shape [3 2 1], got %v", result.Shape())
	}

	expectPanic(t, "reshape", func() { backend.Reshape(x, tensor.Shape{4, 2}) })
}
