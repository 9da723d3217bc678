// Package imaging provides the image handling stages of a picart run.
//
// This package decodes input streams into standard Go image.Image values,
// resamples them to the dimensions chosen by the scaler, and optionally
// flattens transparent pixels onto a solid background. All operations treat
// their input as read-only and return new images; nothing here mutates pixel
// data in place.
//
// # Supported Formats
//
// Decoding goes through the standard image registry, so any format with a
// registered decoder is accepted:
//   - PNG, JPEG, GIF (standard library)
//   - BMP, TIFF, WebP (golang.org/x/image)
//
// JPEG images carrying an EXIF orientation tag are rotated upright during
// decoding.
//
// # Resamplers
//
// Two interchangeable Resizer implementations are available by name:
//   - "imaging": github.com/disintegration/imaging, Lanczos filter (default)
//   - "bild": github.com/anthonynsimon/bild/transform, Lanczos filter
//
// # Error Handling
//
// Errors wrap the kinds defined in internal/apperr:
//   - ErrIO when a file cannot be opened or a stream cannot be read
//   - ErrDecode when the data is empty or not a recognized image
//   - ErrInvalidArgument for unknown resizer names, bad target dimensions
//     or unparseable background colors
package imaging
