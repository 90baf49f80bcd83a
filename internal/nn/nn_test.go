package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/internal/backend/cpu"
	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/internal/tensor"
)

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	data := tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	param := nn.NewParameter("test_param", data)

	if param.Name() != "test_param" {
		t.Errorf("Name() = %s, want test_param", param.Name())
	}
	if param.Tensor() != data {
		t.Error("Tensor() should return the original tensor")
	}
	if param.Numel() != 3 {
		t.Errorf("Numel() = %d, want 3", param.Numel())
	}
}

// TestLinear_Forward checks y = x Wᵀ + b on known values.
func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()
	w := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	layer := nn.NewLinear(3, 2, backend, nil, nn.WithWeight(w))
	copy(layer.Bias().Tensor().Data(), []float64{0.5, -0.5})

	x := tensor.MustFromSlice([]float64{1, 0, -1, 2, 1, 0}, tensor.Shape{2, 3})
	out, err := layer.Forward(x)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float64{-1.5, -2.5, 4.5, 12.5}, out.Data(), 1e-12)
}

func TestLinear_ForwardShapeErrors(t *testing.T) {
	layer := nn.NewLinear(3, 2, cpu.New(), rand.New(rand.NewPCG(1, 1)))

	_, err := layer.Forward(tensor.Zeros(tensor.Shape{3}))
	assert.Error(t, err)
	_, err = layer.Forward(tensor.Zeros(tensor.Shape{1, 4}))
	assert.Error(t, err)
}

func TestXavierBounds(t *testing.T) {
	w := nn.Xavier(10, 20, tensor.Shape{20, 10}, rand.New(rand.NewPCG(3, 3)))
	bound := math.Sqrt(6.0 / 30)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}
}

func TestParseInit(t *testing.T) {
	for _, s := range []string{"xavier", "normal"} {
		scheme, err := nn.ParseInit(s)
		require.NoError(t, err)
		assert.Equal(t, nn.Init(s), scheme)
	}
	_, err := nn.ParseInit("kaiming")
	assert.Error(t, err)
}

func TestNewMLP_Parameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model, err := nn.NewMLP(nn.MLPConfig{
		InputDim:   4,
		Hidden:     []int{8, 3},
		Activation: nn.ActivationReLU,
		Init:       nn.InitNormal,
		Bias:       true,
	}, backend, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	var names []string
	var numel []int
	for _, p := range model.Parameters() {
		names = append(names, p.Name())
		numel = append(numel, p.Numel())
	}
	assert.Equal(t, []string{"0.weight", "0.bias", "2.weight", "2.bias", "4.weight", "4.bias"}, names)
	assert.Equal(t, []int{32, 8, 24, 3, 3, 1}, numel)
	assert.Equal(t, 5, model.Len())
}

func TestNewMLP_Errors(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewPCG(1, 2))

	_, err := nn.NewMLP(nn.MLPConfig{InputDim: 0}, backend, rng)
	assert.Error(t, err)
	_, err = nn.NewMLP(nn.MLPConfig{InputDim: 2, Hidden: []int{0}, Activation: nn.ActivationTanh}, backend, rng)
	assert.Error(t, err)
	_, err = nn.NewMLP(nn.MLPConfig{InputDim: 2, Hidden: []int{3}, Activation: "gelu"}, backend, rng)
	assert.Error(t, err)
}

// TestNetwork_GradientMatchesFiniteDifferences perturbs every parameter of a
// small MLP and compares with the per-sample gradient.
func TestNetwork_GradientMatchesFiniteDifferences(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model, err := nn.NewMLP(nn.MLPConfig{
		InputDim:   3,
		Hidden:     []int{4},
		Activation: nn.ActivationTanh,
		Bias:       true,
	}, backend, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)
	net := nn.NewNetwork(model, backend)

	x := tensor.MustFromSlice([]float64{0.3, -0.7, 0.2}, tensor.Shape{3})
	params := net.Parameters()
	grad, err := net.Gradient(x, params)
	require.NoError(t, err)
	require.Len(t, grad, 4*3+4+4+1)

	const h = 1e-6
	idx := 0
	for _, p := range params {
		data := p.Tensor().Data()
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			plus, err := net.Forward(x)
			require.NoError(t, err)
			data[i] = orig - h
			minus, err := net.Forward(x)
			require.NoError(t, err)
			data[i] = orig
			assert.InDelta(t, (plus-minus)/(2*h), grad[idx], 1e-6, "%s[%d]", p.Name(), i)
			idx++
		}
	}
}

func TestNetwork_GradientSubsetOrder(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model, err := nn.NewMLP(nn.MLPConfig{InputDim: 2, Hidden: []int{3}, Activation: nn.ActivationSigmoid, Bias: true},
		backend, rand.New(rand.NewPCG(7, 8)))
	require.NoError(t, err)
	net := nn.NewNetwork(model, backend)
	x := tensor.MustFromSlice([]float64{1, -1}, tensor.Shape{2})

	params := net.Parameters()
	full, err := net.Gradient(x, params)
	require.NoError(t, err)

	// [2.bias, 0.weight] is full[12:13] followed by full[0:6].
	subset, err := net.Gradient(x, []*nn.Parameter{params[3], params[0]})
	require.NoError(t, err)
	assert.InDeltaSlice(t, append(append([]float64{}, full[12:13]...), full[0:6]...), subset, 1e-12)

	// The output bias has gradient exactly 1.
	assert.Equal(t, 1.0, full[12])
	assert.Equal(t, 0, backend.Tape().NumOps(), "tape is cleared after each gradient")
}
