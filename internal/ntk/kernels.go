// Package ntk estimates the empirical neural tangent kernel of a scalar-output
// function and evaluates the profiled Gaussian likelihood of a kernel matrix.
//
// The kernel is the Gram matrix of per-sample parameter gradients. Parameters
// are processed in chunks (see ChunkParameters) so that the dense Jacobian of
// one chunk fits in a memory budget; the Gram matrix of the full Jacobian is
// the sum of the Gram matrices of its column blocks.
package ntk

import (
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ntk/internal/tensor"
)

// Function is a differentiable mapping from one input sample to a scalar.
//
// Gradient must evaluate the function on x and return the gradient of the
// scalar output with respect to params, flattened and concatenated in order.
// This is the single differentiation capability the kernel builder needs.
type Function[P Param] interface {
	Parameters() []P
	Gradient(x *tensor.Tensor, params []P) ([]float64, error)
}

// Kernels holds the three kernel blocks accumulated over all chunks.
//
// A block whose sample set is empty is a zero-value (empty) matrix.
type Kernels struct {
	TrainTrain *mat.SymDense // ntr × ntr
	TestTrain  *mat.Dense    // nte × ntr
	TestTest   *mat.SymDense // nte × nte
}

func newKernels(ntr, nte int) *Kernels {
	k := &Kernels{
		TrainTrain: &mat.SymDense{},
		TestTrain:  &mat.Dense{},
		TestTest:   &mat.SymDense{},
	}
	if ntr > 0 {
		k.TrainTrain = mat.NewSymDense(ntr, nil)
	}
	if nte > 0 {
		k.TestTest = mat.NewSymDense(nte, nil)
	}
	if ntr > 0 && nte > 0 {
		k.TestTrain = mat.NewDense(nte, ntr, nil)
	}
	return k
}

// accumulate adds the Gram contributions of one chunk in place:
//
//	TrainTrain += jtr jtrᵀ, TestTrain += jte jtrᵀ, TestTest += jte jteᵀ
func (k *Kernels) accumulate(jtr, jte *mat.Dense) {
	if jtr != nil {
		k.TrainTrain.SymRankK(k.TrainTrain, 1, jtr)
	}
	if jte != nil {
		k.TestTest.SymRankK(k.TestTest, 1, jte)
	}
	if jtr != nil && jte != nil {
		blas64.Gemm(blas.NoTrans, blas.Trans, 1, jte.RawMatrix(), jtr.RawMatrix(), 1, k.TestTrain.RawMatrix())
	}
}

// Jacobian returns the (len(samples) × Numel(chunk)) matrix whose row i is the
// flattened gradient of f on samples[i] with respect to chunk. It returns a
// nil matrix when there are no samples.
func Jacobian[P Param](f Function[P], chunk []P, samples []*tensor.Tensor) (*mat.Dense, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	numel := Numel(chunk)
	if numel == 0 {
		return nil, errors.New("jacobian: chunk has no elements")
	}

	j := mat.NewDense(len(samples), numel, nil)
	for i, x := range samples {
		g, err := f.Gradient(x, chunk)
		if err != nil {
			return nil, errors.WithMessagef(err, "sample %d", i)
		}
		if len(g) != numel {
			return nil, errors.Errorf("sample %d: gradient has %d elements, chunk has %d", i, len(g), numel)
		}
		j.SetRow(i, g)
	}
	return j, nil
}

// ComputeKernels returns the train-train, test-train and test-test empirical
// NTK blocks of f.
//
// Parameters are chunked with ChunkParameters for len(xtr)+len(xte) samples;
// for every chunk the train and test Jacobians are built, their Gram products
// added into the accumulators and the Jacobians dropped. One progress line
// "[i/total] [len=L numel=N]" is logged per chunk. Any gradient failure is
// returned immediately with the chunk and sample it occurred on.
func ComputeKernels[P Param](f Function[P], xtr, xte []*tensor.Tensor, opts ...Option) (*Kernels, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	k := newKernels(len(xtr), len(xte))
	chunks := ChunkParameters(f.Parameters(), len(xtr), len(xte), o.budgetBytes)

	for i, chunk := range chunks {
		numel := Numel(chunk)
		o.logger.Infof("[%d/%d] [len=%d numel=%d]", i, len(chunks), len(chunk), numel)
		start := time.Now()

		jtr, err := Jacobian(f, chunk, xtr)
		if err != nil {
			return nil, errors.WithMessagef(err, "chunk %d/%d: train jacobian", i, len(chunks))
		}
		jte, err := Jacobian(f, chunk, xte)
		if err != nil {
			return nil, errors.WithMessagef(err, "chunk %d/%d: test jacobian", i, len(chunks))
		}
		k.accumulate(jtr, jte)
		o.recorder.ObserveChunk(numel, len(xtr)+len(xte), time.Since(start))
	}

	return k, nil
}

// ComputeKernel returns only the train-train kernel of f.
//
// It is ComputeKernels(f, xtr, xtr[:1]) with the test blocks discarded; the
// extra sample only shifts the chunk budget, never the returned values.
func ComputeKernel[P Param](f Function[P], xtr []*tensor.Tensor, opts ...Option) (*mat.SymDense, error) {
	k, err := ComputeKernels(f, xtr, xtr[:min(1, len(xtr))], opts...)
	if err != nil {
		return nil, err
	}
	return k.TrainTrain, nil
}
