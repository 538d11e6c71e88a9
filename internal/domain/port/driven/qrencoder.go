package driven

// QREncoder defines the driven port for turning a connection string into a
// displayable QR image. Encoding failure is reported to the caller, never
// fatal to the process.
type QREncoder interface {
	// EncodePNG renders content as a size x size pixel PNG.
	EncodePNG(content string, size int) ([]byte, error)
}
