package tensor

// Backend defines the narrow set of operations sparsecode models need from a
// compute backend. Backends own the actual computation; tensors only route calls.
//
// Shape errors are reported by panicking, the way every op in this package does.
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Device returns the device the backend allocates on.
	Device() Device

	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float32) *RawTensor
	MulScalar(x *RawTensor, scalar float32) *RawTensor

	// Exp computes the element-wise exponential.
	Exp(x *RawTensor) *RawTensor

	// Comparison operations (element-wise, return bool tensor)
	Greater(a, b *RawTensor) *RawTensor      // a > b
	GreaterEqual(a, b *RawTensor) *RawTensor // a >= b
	LowerEqual(a, b *RawTensor) *RawTensor   // a <= b

	// Where selects x where condition is true and y elsewhere.
	// All three operands broadcast against each other.
	Where(condition, x, y *RawTensor) *RawTensor

	// Activation functions
	ReLU(x *RawTensor) *RawTensor
	LeakyReLU(x *RawTensor, slope float32) *RawTensor
	LogSoftmax(x *RawTensor, dim int) *RawTensor
}
