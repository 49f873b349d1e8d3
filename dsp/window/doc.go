// Package window generates cosine-sum window functions and the one-sided
// tapers derived from them.
package window
