// Package distmatrix provides an immutable, validated symmetric distance
// matrix over N ≥ 4 leaf objects, with optional per-column labels.
//
// A Matrix is built once via New and never mutated afterward; every Tree
// clone in a search shares the same *Matrix by pointer. Construction
// validates dimension, symmetry, and non-negativity so that downstream
// packages (qtree, score, mutate, search) never have to re-check them.
package distmatrix
