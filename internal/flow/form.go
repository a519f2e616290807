// Package flow implements the add-harvest and edit-harvest submissions:
// form validation, photo encoding, verification gating and the store write.
package flow

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sells-group/herb-harvest/internal/model"
)

// HarvestForm is the submitted harvest form.
type HarvestForm struct {
	HerbName string  `form:"herbName" validate:"required,min=2"`
	Quantity float64 `form:"quantity" validate:"finite,gt=0"`
	Unit     string  `form:"unit"`

	// Location is "lat, lon" text.
	Location string `form:"location"`
	Photo    *Photo `form:"photo"`
}

// Photo is an uploaded image file.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return isFinite(fl.Field().Float())
	})
	return v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// validateForm checks field constraints and normalizes the unit.
func validateForm(v *validator.Validate, form *HarvestForm, requirePhoto bool) error {
	form.HerbName = strings.TrimSpace(form.HerbName)
	form.Unit = strings.TrimSpace(form.Unit)
	if form.Unit == "" {
		form.Unit = model.DefaultUnit
	}

	fields := formatValidationError(v.Struct(form))
	if requirePhoto && (form.Photo == nil || len(form.Photo.Data) == 0) {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["photo"] = "A photo is required"
	}
	if _, _, err := ParseLocation(form.Location); err != nil {
		if fields == nil {
			fields = make(map[string]string)
		}
		var ve *ValidationError
		if errors.As(err, &ve) {
			fields["location"] = ve.Fields["location"]
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func formatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["form"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errs[e.Field()] = "This field is required"
		case "min":
			errs[e.Field()] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "finite":
			errs[e.Field()] = "Must be a number"
		case "gt":
			errs[e.Field()] = fmt.Sprintf("Must be greater than %s", e.Param())
		default:
			errs[e.Field()] = "Invalid value"
		}
	}
	return errs
}

// ParseLocation parses "lat, lon". ok is false when s is blank. Malformed
// input yields a *ValidationError for the location field.
func ParseLocation(s string) (gps model.GPS, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.GPS{}, false, nil
	}
	lat, lon, found := strings.Cut(s, ",")
	if !found {
		return model.GPS{}, false, fieldError("location", "Must be \"lat, lon\"")
	}
	gps.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || !isFinite(gps.Lat) || gps.Lat < -90 || gps.Lat > 90 {
		return model.GPS{}, false, fieldError("location", "Invalid latitude")
	}
	gps.Lon, err = strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil || !isFinite(gps.Lon) || gps.Lon < -180 || gps.Lon > 180 {
		return model.GPS{}, false, fieldError("location", "Invalid longitude")
	}
	return gps, true, nil
}
