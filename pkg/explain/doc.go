// Package explain defines the structured explanation of a model prediction.
//
// An [Explanation] is produced upstream by whatever computed the feature
// contributions (LIME, permutation importance, linear coefficients, a tree
// walk, ...). This package only describes its shape; rendering lives in
// [github.com/matzehuels/explaintext/pkg/format/text] and JSON encoding in
// [github.com/matzehuels/explaintext/pkg/io].
//
// # Feature Names
//
// Feature names come in three variants, discriminated by [NameKind]:
//
//   - [Plain]: an ordinary name such as "petal width"
//   - [Formatted]: a name that was already formatted for display and must be
//     shown verbatim
//   - [Hashed]: a hashing-trick bucket that several raw features collided
//     into, each with the sign of its contribution
//
// # Ownership
//
// Explanations are built once by the caller and treated as read-only
// afterwards. None of the renderers in this module modify their input, so an
// Explanation may be shared between goroutines once constructed.
package explain
