// Package timestamp extracts capture times from image file names.
//
// Sensor capture tooling in this domain encodes the capture instant in
// the file name far more reliably than EXIF or filesystem metadata does,
// so the resolver recognizes a small set of conventions: unix-prefixed
// epoch runs (10, 13 or 16 digits) and plain YYYYMMDDHHMMSS / YYYYMMDD
// dates with optional "-" or "_" separators.
//
// Epoch values are interpreted in the local timezone of the running
// process. Filenames carrying epoch timestamps will therefore display
// differently on viewers in different timezones; this is a known
// limitation, carried over deliberately.
package timestamp
