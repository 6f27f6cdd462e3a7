// Package mats implements the MatScript checker and interpreter. MatScript is a
// small imperative language over scalars and matrices:
//   - Assignments `x = expr;`, compound forms `+= -= *= /=` and in-place matrix
//     element updates `A[i, j] = expr;` (0-based, row first).
//   - Int, float and string literals, matrix literals `[1, 2; 3, 4]` and the
//     special constructors `eye(n)`, `zeros(n)`, `ones(n)`.
//   - Arithmetic `+ - * /`, element-wise `.+ .- .* ./`, comparisons, unary minus
//     and the postfix transpose `'`.
//   - `if`/`else`, `while`, `for i = a:b` (upper bound exclusive), `break`,
//     `continue`, `print` and `return` as whole-program exit.
//
// Comments beginning with `#` are ignored. A program is parsed with
// Engine.Parse, validated with Engine.Check and executed with Engine.Run; the
// interpreter assumes the checker reported no diagnostics.
package mats
