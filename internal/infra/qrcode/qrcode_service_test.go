package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateDiscountQR(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		level string
	}{
		{"low correction", 128, "L"},
		{"medium correction", 256, "M"},
		{"unknown level falls back", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.level)

			png, err := svc.GenerateDiscountQR("save10")
			require.NoError(t, err)
			require.Greater(t, len(png), 4)

			// PNG magic number
			assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
		})
	}
}

func TestQRCodeService_GenerateDiscountQR_EmptyCode(t *testing.T) {
	_, err := NewQRCodeService(256, "M").GenerateDiscountQR("  ")
	assert.Error(t, err)
}

func TestQRCodeService_ParseDiscountQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{"valid", `{"code":"save10","type":"discount"}`, "SAVE10", false},
		{"wrong type", `{"code":"SAVE10","type":"subscription"}`, "", true},
		{"missing code", `{"type":"discount"}`, "", true},
		{"not json", `SAVE10`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ParseDiscountQR(tt.data)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
