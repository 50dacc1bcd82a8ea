// Package library enumerates the image files available to the gallery.
//
// The scanner walks a single gallery directory and returns absolute paths
// to raster image files, filtered by extension. It can also watch the
// directory tree and invalidate cached renditions when files are written,
// renamed or removed out-of-band.
package library
