package service

// QRCodeService renders and reads discount share codes.
type QRCodeService interface {
	// GenerateDiscountQR renders the discount code as a PNG image.
	GenerateDiscountQR(code string) ([]byte, error)

	// ParseDiscountQR extracts the discount code from scanned QR content.
	ParseDiscountQR(qrData string) (string, error)
}
