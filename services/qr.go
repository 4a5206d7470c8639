package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

var vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,256}@[a-zA-Z][a-zA-Z0-9.-]{1,63}$`)

// QRService keeps the payment QR guests scan to send shagun.
type QRService struct {
	store    store.Store
	maxBytes int
}

func NewQRService(st store.Store, maxBytes int) *QRService {
	return &QRService{store: st, maxBytes: maxBytes}
}

// Upload stores an uploaded image. Only the image/* content type and the size
// cap are enforced; when the image holds a readable QR its text is kept as
// the payload.
func (s *QRService) Upload(ctx context.Context, userID, contentType string, data []byte) (*models.UPIQR, error) {
	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, invalid("invalidImage", "Please upload an image file")
	}
	if len(data) == 0 {
		return nil, invalid("invalidImage", "Please upload an image file")
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return nil, invalid("imageTooLarge", "Image is too large")
	}

	qr := &models.UPIQR{Image: dataURI(mimeType, data)}
	if payload, err := DecodeQR(data); err == nil {
		qr.Payload = payload
	} else {
		utils.SafeDebug("🔍 Uploaded image has no readable QR: %v", err)
	}

	if err := s.store.SetUPIQR(ctx, userID, qr); err != nil {
		return nil, err
	}
	return qr, nil
}

// UploadDataURI accepts the image as a data: URI, the way the browser reads it.
func (s *QRService) UploadDataURI(ctx context.Context, userID, uri string) (*models.UPIQR, error) {
	contentType, data, err := parseDataURI(uri)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, userID, contentType, data)
}

// Generate renders a QR for the given UPI ID and stores it.
func (s *QRService) Generate(ctx context.Context, userID string, req models.GenerateQRRequest) (*models.UPIQR, error) {
	payload, err := BuildUPIURI(req.VPA, req.PayeeName, req.Amount)
	if err != nil {
		return nil, err
	}
	png, err := EncodeQR(payload)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	qr := &models.UPIQR{Image: dataURI("image/png", png), Payload: payload}
	if err := s.store.SetUPIQR(ctx, userID, qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (s *QRService) Get(ctx context.Context, userID string) (*models.UPIQR, error) {
	return s.store.GetUPIQR(ctx, userID)
}

func (s *QRService) Delete(ctx context.Context, userID string) error {
	return s.store.SetUPIQR(ctx, userID, nil)
}

// ============================================================================
// ENCODING
// ============================================================================

// BuildUPIURI builds a upi://pay deep link. A zero amount leaves the amount
// for the payer to fill in.
func BuildUPIURI(vpa, payeeName string, amount float64) (string, error) {
	vpa = strings.TrimSpace(vpa)
	if !vpaPattern.MatchString(vpa) {
		return "", invalid("invalidVpa", "Please enter a valid UPI ID")
	}
	if amount < 0 {
		return "", invalid("invalidAmount", "Amount cannot be negative")
	}

	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(upiEscape(vpa))
	if name := strings.TrimSpace(payeeName); name != "" {
		b.WriteString("&pn=")
		b.WriteString(upiEscape(name))
	}
	if amount > 0 {
		b.WriteString("&am=")
		b.WriteString(strconv.FormatFloat(amount, 'f', 2, 64))
	}
	b.WriteString("&cu=INR")
	return b.String(), nil
}

// upiEscape query-escapes a parameter value. UPI apps expect %20 for spaces
// and a literal @ in the VPA.
func upiEscape(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

// EncodeQR renders content as a PNG QR code.
func EncodeQR(content string) ([]byte, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := standard.NewWithWriter(nopCloser{buf},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err := qrc.Save(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeQR reads the text of the first QR code found in an image.
func DecodeQR(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}

func dataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func parseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return "", nil, invalid("invalidImage", "Please upload an image file")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, invalid("invalidImage", "Please upload an image file")
	}
	contentType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, invalid("invalidImage", "Please upload an image file")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, invalid("invalidImage", "Please upload an image file")
	}
	return contentType, data, nil
}
