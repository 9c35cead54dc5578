// Package svdcomm implements lossy low-rank compression of gradient tensors.
//
// Encode reshapes a tensor into a matrix, factorizes it with a thin SVD and
// keeps a subset of the singular components, either the top-k or a random
// subset drawn with probabilities proportional to the spectrum. Sampled
// singular values are divided by their inclusion probability so the
// reconstruction is unbiased. Decode multiplies the kept factors back
// together and restores the original shape.
//
// Payloads are in-process values; transporting them between workers is the
// caller's concern.
package svdcomm
