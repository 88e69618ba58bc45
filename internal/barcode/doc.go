// Package barcode provides a pluggable interface for reading barcodes out of
// images, with a gozxing-backed UPC-A reader as the default backend.
//
// It closes the loop for rendered symbols: render a symbol, scan it back and
// compare the digits.
package barcode
