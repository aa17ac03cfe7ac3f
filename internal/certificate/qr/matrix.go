// Package qr turns a verification URL into a QR module matrix and paints that
// matrix onto a canvas as vector squares.
package qr

import (
	"fmt"

	"certpdf/internal/domain"
)

// Matrix is a square QR symbol; true cells are dark modules. Row 0 is the top row.
type Matrix [][]bool

// Size returns the number of modules per side.
func (m Matrix) Size() int {
	return len(m)
}

// Validate rejects empty and non-square matrices.
func (m Matrix) Validate() error {
	n := len(m)
	if n == 0 {
		return &domain.QREncodingError{Reason: "matrix is empty"}
	}
	for i, row := range m {
		if len(row) != n {
			return &domain.QREncodingError{Reason: fmt.Sprintf("matrix is not square: row %d has %d modules, want %d", i, len(row), n)}
		}
	}
	return nil
}

// DarkCount returns the number of dark modules.
func (m Matrix) DarkCount() int {
	n := 0
	for _, row := range m {
		for _, dark := range row {
			if dark {
				n++
			}
		}
	}
	return n
}
