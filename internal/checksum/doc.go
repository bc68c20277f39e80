// Package checksum hashes source content for the source fingerprint.
//
// Two hashes are available for a single file:
//
//   - Raw: SHA-256 of the exact bytes
//   - Normalized: SHA-256 after removing // and /* */ comments and collapsing
//     whitespace, so reformatting or re-commenting leaves it unchanged
//
// String literals ('...', "..." and `...`) are preserved verbatim during
// normalization, including any comment markers they contain.
//
// A Fingerprint folds the normalized hashes of many files, keyed by their
// relative path, into one project-wide digest.
//
//	fp := checksum.NewFingerprint()
//	fp.Add("src/app.ts", content)
//	digest := fp.Sum()
//
// SHA256 is safe for concurrent use. Fingerprint is not.
package checksum
