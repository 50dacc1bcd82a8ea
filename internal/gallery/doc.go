// Package gallery turns a flat set of image file paths into a
// chronologically ordered collection.
//
// Each file is assigned a single best-guess timestamp from a strict
// priority of sources: a timestamp encoded in the file name, then the
// EXIF DateTime tag, then the filesystem modification time. File names
// are trusted first because capture tooling writes them deliberately,
// whereas EXIF and mtime often reflect copy or post-processing artifacts.
//
// Two pipelines are provided. Organize decodes every image for geometry
// and EXIF; OrganizeFast skips decoding entirely and works from the file
// name and stat data alone, trading EXIF timestamps and true dimensions
// for throughput on large collections.
package gallery
