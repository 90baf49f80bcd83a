package tensor

// Backend defines the operations a compute backend must provide for the
// networks that the kernel builder differentiates.
//
// Implementations:
//   - cpu.Backend: pure Go, matrix products through gonum BLAS
//   - autodiff.Backend: decorator recording operations on a gradient tape
type Backend interface {
	Name() string

	// Element-wise binary operations. b may be a row vector ([n] or [1, n])
	// broadcast over the rows of a 2-D a.
	Add(a, b *Tensor) (*Tensor, error)
	Sub(a, b *Tensor) (*Tensor, error)
	Mul(a, b *Tensor) (*Tensor, error)

	// MatMul performs (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *Tensor) (*Tensor, error)

	// Shape operations
	Reshape(t *Tensor, shape Shape) (*Tensor, error)
	Transpose(t *Tensor) (*Tensor, error) // 2-D only

	// Scalar and reduction operations
	MulScalar(x *Tensor, s float64) *Tensor
	Sum(x *Tensor) *Tensor // reduces to a 0-D tensor

	// Activation functions
	Tanh(x *Tensor) *Tensor
	ReLU(x *Tensor) *Tensor
	Sigmoid(x *Tensor) *Tensor
}
