package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"parking/shared/failure"
	"parking/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lotRequest struct {
	Name     string  `json:"name"      validate:"required"`
	Price    float64 `json:"price"     validate:"gt=0"`
	MaxSpots int     `json:"max_spots" validate:"gt=0"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin user"`
}

type imageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    lotRequest
		wantErr string
	}{
		{name: "valid", data: lotRequest{Name: "North", Price: 10, MaxSpots: 3}},
		{name: "missing name", data: lotRequest{Price: 10, MaxSpots: 3}, wantErr: "name is required"},
		{name: "zero price", data: lotRequest{Name: "North", MaxSpots: 3}, wantErr: "price must be greater than 0"},
		{name: "negative spots", data: lotRequest{Name: "North", Price: 10, MaxSpots: -1}, wantErr: "max_spots must be greater than 0"},
		{name: "unknown role", data: lotRequest{Name: "North", Price: 10, MaxSpots: 1, Role: "root"}, wantErr: "role must be one of admin user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"North","price":10,"max_spots":2}`},
		{name: "fails rules", body: `{"name":"North","price":0,"max_spots":2}`, wantErr: true},
		{name: "malformed body", body: `{"name":`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data lotRequest

			err := validator.Validate(strings.NewReader(tt.body), &data)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "North", data.Name)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("7f1c1c3e-2b7a-4a53-9a55-1f4f0f1c2d3e", "required,uuid"))
	assert.Error(t, validator.ValidateVar("lot-1", "required,uuid"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestImageValidation(t *testing.T) {
	header := func(contentType string, size int64) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", contentType)

		return &multipart.FileHeader{Filename: "lot.png", Header: h, Size: size}
	}

	tests := []struct {
		name    string
		image   *multipart.FileHeader
		wantErr bool
	}{
		{name: "no image", image: nil},
		{name: "png within size", image: header("image/png", 512)},
		{name: "wrong type", image: header("application/pdf", 512), wantErr: true},
		{name: "too large", image: header("image/jpeg", 2<<20), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&imageRequest{Image: tt.image})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
