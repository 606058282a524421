// Package sink provides destinations for extracted field maps.
package sink
