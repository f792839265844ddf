/*
 * tensor.go, part of gophon.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package phon

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Tensor is a 3x3 real matrix. It is the unit for the dielectric tensor,
// each effective-charge block and each force-constant block.
type Tensor struct {
	*mat.Dense
}

// NewTensor returns a tensor with the 9 values in data, in row-major order.
// The slice is used as backing data, not copied.
func NewTensor(data []float64) (*Tensor, error) {
	if len(data) != 9 {
		return nil, fmt.Errorf("phon: a tensor needs 9 values, got %d", len(data))
	}
	return &Tensor{mat.NewDense(3, 3, data)}, nil
}

// ZeroTensor returns a tensor filled with zeros.
func ZeroTensor() *Tensor {
	return &Tensor{mat.NewDense(3, 3, nil)}
}

// Diag returns the diagonal of the tensor.
func (T *Tensor) Diag() [3]float64 {
	return [3]float64{T.At(0, 0), T.At(1, 1), T.At(2, 2)}
}

// Data returns a copy of the 9 values of T, row-major.
func (T *Tensor) Data() []float64 {
	ret := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		ret = append(ret, T.RawRowView(i)...)
	}
	return ret
}

// IsZero returns true if all elements of T are within tol of zero.
func (T *Tensor) IsZero(tol float64) bool {
	for _, v := range T.Data() {
		if !scalar.EqualWithinAbs(v, 0, tol) {
			return false
		}
	}
	return true
}

// Equal returns true if T and T2 are element-wise equal within tol.
func (T *Tensor) Equal(T2 *Tensor, tol float64) bool {
	if T == nil || T2 == nil {
		return T == T2
	}
	return mat.EqualApprox(T.Dense, T2.Dense, tol)
}

func (T *Tensor) String() string {
	return fmt.Sprintf("%v", mat.Formatted(T.Dense, mat.Squeeze()))
}
