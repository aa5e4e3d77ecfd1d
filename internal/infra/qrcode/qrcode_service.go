package qrcode

import (
	"strings"

	"evently/config"
	"evently/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	qrCfg := cfg.QRCode
	if qrCfg == nil {
		qrCfg = &config.QRCodeConfig{}
	}

	return newQRCodeService(qrCfg.Size, qrCfg.ErrorCorrectionLevel, qrCfg.BaseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateEventQR encodes <baseURL>/events/<id> as a PNG.
func (s *qrcodeService) GenerateEventQR(eventID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.EventURL(eventID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// EventURL is the content encoded in an event's share code.
func (s *qrcodeService) EventURL(eventID uuid.UUID) string {
	return s.baseURL + "/events/" + eventID.String()
}
