package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"parking/shared/constant"
	"parking/shared/failure"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Messages name fields the way clients send them.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	for tag, fn := range map[string]val.Func{
		"mimetypes":   validMimetype,
		"maxfilesize": validFileSize,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

// fileHeader unwraps a multipart file field. A nil pointer is an absent optional file.
func fileHeader(field val.FieldLevel) (header *multipart.FileHeader, ok bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, true
	default:
		return nil, false
	}
}

func validMimetype(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	if file == nil {
		return true
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

func validFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	if file == nil {
		return true
	}

	return float64(file.Size) <= maxMB*bytesPerMB
}

// Validate decodes a JSON body from r into data and validates it. Both failures are 400s.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err))
}
