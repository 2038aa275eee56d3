package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	detailMissing      = "missing"
	detailGreaterThan  = "greater_than"
	detailFloatParsing = "float_parsing"
	detailJSONInvalid  = "json_invalid"
	detailNotAnObject  = "model_attributes_type"
	detailInvalidValue = "value_error"
)

const locBody = "body"

// validationDetails converts a gin bind error into per-field detail entries.
func validationDetails(err error) []ValidationDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ValidationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldDetail(fe))
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return []ValidationDetail{{
				Type:  detailNotAnObject,
				Loc:   []string{locBody},
				Msg:   "Input should be a valid dictionary or object",
				Input: typeErr.Value,
			}}
		}
		return []ValidationDetail{{
			Type:  detailFloatParsing,
			Loc:   []string{locBody, typeErr.Field},
			Msg:   "Input should be a valid number",
			Input: typeErr.Value,
		}}
	}

	if errors.Is(err, io.EOF) {
		return []ValidationDetail{{
			Type: detailMissing,
			Loc:  []string{locBody},
			Msg:  "Field required",
		}}
	}

	return []ValidationDetail{{
		Type: detailJSONInvalid,
		Loc:  []string{locBody},
		Msg:  "JSON decode error: " + err.Error(),
	}}
}

func fieldDetail(fe validator.FieldError) ValidationDetail {
	loc := []string{locBody, jsonFieldName(fe.StructField())}

	switch fe.Tag() {
	case "required":
		return ValidationDetail{Type: detailMissing, Loc: loc, Msg: "Field required"}
	case "gt":
		return ValidationDetail{
			Type:  detailGreaterThan,
			Loc:   loc,
			Msg:   "Input should be greater than " + fe.Param(),
			Input: fe.Value(),
		}
	default:
		return ValidationDetail{Type: detailInvalidValue, Loc: loc, Msg: fe.Error(), Input: fe.Value()}
	}
}

// jsonFieldName maps a PredictRequest struct field to its wire name.
func jsonFieldName(structField string) string {
	f, ok := reflect.TypeOf(PredictRequest{}).FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}
