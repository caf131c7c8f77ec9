// Package delay provides fixed-length delay lines for look-ahead alignment.
package delay
