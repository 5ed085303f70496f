package qrcode

import (
	"encoding/json"
	"fmt"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const discountQRType = "discount"

type qrcodeService struct {
	size  int
	level qrcode.RecoveryLevel
}

// discountQRData is the JSON content encoded in a discount QR code.
type discountQRData struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{size: size, level: level}
}

// GenerateDiscountQR renders the normalised discount code as a PNG.
func (s *qrcodeService) GenerateDiscountQR(code string) ([]byte, error) {
	code = entity.NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("discount code is empty")
	}

	payload, err := json.Marshal(discountQRData{Code: code, Type: discountQRType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	png, err := qrcode.Encode(string(payload), s.level, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return png, nil
}

// ParseDiscountQR returns the discount code carried by scanned QR content.
func (s *qrcodeService) ParseDiscountQR(qrData string) (string, error) {
	var data discountQRData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != discountQRType {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	code := entity.NormalizeCode(data.Code)
	if code == "" {
		return "", fmt.Errorf("QR code carries no discount code")
	}

	return code, nil
}
