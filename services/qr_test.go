package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
)

func TestBuildUPIURI(t *testing.T) {
	got, err := BuildUPIURI("ramesh.sharma@okaxis", "Ramesh Sharma", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "upi://pay?pa=ramesh.sharma@okaxis&pn=Ramesh%20Sharma&cu=INR" {
		t.Fatalf("got %q", got)
	}

	got, err = BuildUPIURI("ramesh@ybl", "", 501)
	if err != nil {
		t.Fatal(err)
	}
	if got != "upi://pay?pa=ramesh@ybl&am=501.00&cu=INR" {
		t.Fatalf("got %q", got)
	}

	got, err = BuildUPIURI("ramesh@ybl", "Sharma & Sons&am=1+2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "upi://pay?pa=ramesh@ybl&pn=Sharma%20%26%20Sons%26am%3D1%2B2&cu=INR" {
		t.Fatalf("got %q", got)
	}
	query, err := url.ParseQuery(strings.TrimPrefix(got, "upi://pay?"))
	if err != nil {
		t.Fatal(err)
	}
	if query.Get("pn") != "Sharma & Sons&am=1+2" || query.Has("am") {
		t.Fatalf("payee name leaked into the query: %v", query)
	}

	for _, vpa := range []string{"", "ramesh", "@ybl", "ramesh@", "ram esh@ybl"} {
		if _, err := BuildUPIURI(vpa, "x", 0); !errors.Is(err, ErrValidation) {
			t.Errorf("vpa %q accepted", vpa)
		}
	}
}

func TestEncodeDecodeQR(t *testing.T) {
	payload := "upi://pay?pa=ramesh@ybl&pn=Ramesh&cu=INR"
	png, err := EncodeQR(payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatalf("not a PNG")
	}
	got, err := DecodeQR(png)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != payload {
		t.Fatalf("decoded %q", got)
	}
}

func newQRFixture(t *testing.T, maxBytes int) (*QRService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	if err := st.CreateUser(context.Background(), &models.User{ID: "u1", Mobile: "9876543210", LoginID: "9876543210@nevta.digital"}); err != nil {
		t.Fatal(err)
	}
	return NewQRService(st, maxBytes), st
}

func TestQRServiceGenerateGetDelete(t *testing.T) {
	ctx := context.Background()
	svc, st := newQRFixture(t, 1<<20)

	qr, err := svc.Generate(ctx, "u1", models.GenerateQRRequest{VPA: "ramesh@ybl", PayeeName: "Ramesh"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(qr.Image, "data:image/png;base64,") || qr.Payload == "" {
		t.Fatalf("unexpected qr %+v", qr)
	}
	user, _ := st.GetUserByID(ctx, "u1")
	if !user.HasUPIQR {
		t.Fatalf("user flag not set")
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil || got.Image != qr.Image {
		t.Fatalf("get: %v", err)
	}

	if err := svc.Delete(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("after delete: %v", err)
	}
}

func TestQRServiceUploadChecks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQRFixture(t, 16)

	if _, err := svc.Upload(ctx, "u1", "application/pdf", []byte("%PDF")); !errors.Is(err, ErrValidation) {
		t.Fatalf("non-image accepted: %v", err)
	}
	var verr *ValidationError
	_, err := svc.Upload(ctx, "u1", "image/png", make([]byte, 17))
	if !errors.As(err, &verr) || verr.Key != "imageTooLarge" {
		t.Fatalf("oversized accepted: %v", err)
	}
	// content is not inspected beyond the MIME prefix
	qr, err := svc.Upload(ctx, "u1", "image/jpeg; charset=binary", []byte("not really"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if qr.Payload != "" || !strings.HasPrefix(qr.Image, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected %+v", qr)
	}
}

func TestQRServiceUploadDataURIReadsPayload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQRFixture(t, 1<<20)

	png, err := EncodeQR("upi://pay?pa=sita@upi&cu=INR")
	if err != nil {
		t.Fatal(err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	qr, err := svc.UploadDataURI(ctx, "u1", uri)
	if err != nil {
		t.Fatal(err)
	}
	if qr.Payload != "upi://pay?pa=sita@upi&cu=INR" {
		t.Fatalf("payload = %q", qr.Payload)
	}

	if _, err := svc.UploadDataURI(ctx, "u1", "not a data uri"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad uri: %v", err)
	}
}
