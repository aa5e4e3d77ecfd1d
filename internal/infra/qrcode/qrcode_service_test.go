package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"evently/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService_ErrorCorrectionLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  qrcode.RecoveryLevel
	}{
		{"Low error correction", "L", qrcode.Low},
		{"Medium error correction", "M", qrcode.Medium},
		{"High error correction", "Q", qrcode.High},
		{"Highest error correction", "H", qrcode.Highest},
		{"Default error correction", "invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newQRCodeService(256, tt.level, "")
			assert.Equal(t, tt.want, svc.errorCorrectionLevel)
		})
	}
}

func TestQRCodeService_GenerateEventQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M", BaseURL: "https://evently.example"}})

	qrBytes, err := svc.GenerateEventQR(uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	img, err := png.Decode(bytes.NewReader(qrBytes))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestQRCodeService_GenerateEventQR_DifferentSizes(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := newQRCodeService(size, "M", "http://localhost:3000")

		qrBytes, err := svc.GenerateEventQR(uuid.New())
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
	}
}

func TestQRCodeService_EventURL(t *testing.T) {
	eventID := uuid.MustParse("5f0c9c4e-1c7e-4a54-8f5b-0d7c3f1a2b3c")

	assert.Equal(t, "https://evently.example/events/5f0c9c4e-1c7e-4a54-8f5b-0d7c3f1a2b3c",
		newQRCodeService(256, "M", "https://evently.example/").EventURL(eventID))
	assert.Equal(t, "/events/5f0c9c4e-1c7e-4a54-8f5b-0d7c3f1a2b3c",
		newQRCodeService(256, "M", "").EventURL(eventID))
}
