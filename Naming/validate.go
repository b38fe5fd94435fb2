package Naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Result is the structured outcome of validating a filename against a
// fixed grammar. Malformed input is never an error: it yields IsValid
// false with per-field diagnostics and whatever metadata was recognizable.
type Result struct {
	IsValid  bool              `json:"isValid"`
	Errors   []string          `json:"errors"`
	Metadata map[string]string `json:"metadata"`
}

// ErrUnknownCategory is returned when the scheme has no fixed grammar.
var ErrUnknownCategory = errors.New("no validation grammar for naming scheme")

var (
	mobilityPattern = regexp.MustCompile(`(?i)^MOB_[A-Z]{3}_[A-Z]{2,3}_\d{8}_F\d{3,4}\.(jpg|jpeg|png)$`)
	retailPattern   = regexp.MustCompile(`(?i)^[A-Za-z0-9-]+_[A-Z]{3}\d+_[A-Za-z]+_[A-Za-z0-9-]+_Shelf\d+_[A-Za-z]+_\d{8}_\d{2,3}\.(jpg|jpeg|png)$`)

	cityPattern    = regexp.MustCompile(`(?i)^[A-Z]{3}$`)
	datePattern    = regexp.MustCompile(`^\d{8}$`)
	framePattern   = regexp.MustCompile(`(?i)^F\d{3,4}\.(jpg|jpeg|png)$`)
	storeIDPattern = regexp.MustCompile(`(?i)^[A-Z]{3}\d+$`)
	shelfPattern   = regexp.MustCompile(`(?i)^Shelf\d+$`)
	seqPattern     = regexp.MustCompile(`(?i)^\d{2,3}\.(jpg|jpeg|png)$`)
)

// Validate checks a filename against the fixed grammar bound to the given
// scheme identifier. Only mobility and retail carry validation grammars.
func Validate(filename, schemeID string) (Result, error) {
	if filename == "" {
		return Result{Errors: []string{"Filename is required"}, Metadata: map[string]string{}}, nil
	}

	switch schemeID {
	case SchemeIDMobility:
		return ValidateMobility(filename), nil
	case SchemeIDRetail:
		return ValidateRetail(filename), nil
	}
	return Result{}, fmt.Errorf("%w: %s", ErrUnknownCategory, schemeID)
}

// ValidateMobility checks MOB_CITY_CAMERA_DATE_FRAME.ext names.
func ValidateMobility(filename string) Result {
	errs := []string{}
	metadata := map[string]string{}

	if !mobilityPattern.MatchString(filename) {
		parts := strings.Split(filename, "_")

		if len(parts) < 5 {
			errs = append(errs, "Invalid format. Expected: MOB_CITY_CAMERA_DATE_FRAME.jpg")
			return Result{Errors: errs, Metadata: metadata}
		}

		if parts[0] != "MOB" {
			errs = append(errs, fmt.Sprintf("Part must be 'MOB', found '%s'", parts[0]))
		} else {
			metadata["part"] = parts[0]
		}

		if parts[1] != "" && !cityPattern.MatchString(parts[1]) {
			errs = append(errs, fmt.Sprintf("City must be 3-letter code, found '%s'", parts[1]))
		} else {
			metadata["city"] = parts[1]
		}

		if parts[2] != "" && !isCameraPosition(parts[2]) {
			errs = append(errs, fmt.Sprintf("Camera must be one of %s, found '%s'",
				strings.Join(CameraPositions, ", "), parts[2]))
		} else {
			metadata["camera"] = parts[2]
		}

		if parts[3] != "" && !datePattern.MatchString(parts[3]) {
			errs = append(errs, fmt.Sprintf("Date must be YYYYMMDD format, found '%s'", parts[3]))
		} else {
			metadata["date"] = parts[3]
		}

		frame := strings.Join(parts[4:], "_")
		if !framePattern.MatchString(frame) {
			errs = append(errs, fmt.Sprintf("Frame must be F001-F9999 format with .jpg extension, found '%s'", frame))
		} else {
			metadata["frameId"] = strings.SplitN(frame, ".", 2)[0]
		}

		return Result{IsValid: len(errs) == 0, Errors: errs, Metadata: metadata}
	}

	parts := strings.Split(filename, "_")
	metadata["part"] = parts[0]
	metadata["city"] = parts[1]
	metadata["camera"] = parts[2]
	metadata["date"] = parts[3]
	metadata["frameId"] = strings.SplitN(parts[4], ".", 2)[0]

	return Result{IsValid: true, Errors: errs, Metadata: metadata}
}

// ValidateRetail checks
// CLIENT_STOREID_CATEGORY_PRODUCT_SHELF_ANGLE_DATE_SEQ.ext names.
func ValidateRetail(filename string) Result {
	errs := []string{}
	metadata := map[string]string{}

	if !retailPattern.MatchString(filename) {
		parts := strings.Split(filename, "_")

		if len(parts) < 8 {
			errs = append(errs, "Invalid format. Expected: CLIENT_STOREID_CATEGORY_PRODUCT_SHELF_ANGLE_DATE_SEQ.jpg")
			return Result{Errors: errs, Metadata: metadata}
		}

		if len(parts[0]) < 2 {
			errs = append(errs, "Client name is required")
		} else {
			metadata["client"] = parts[0]
		}

		if parts[1] != "" && !storeIDPattern.MatchString(parts[1]) {
			errs = append(errs, fmt.Sprintf("Store ID must be format like STR1023, found '%s'", parts[1]))
		} else {
			metadata["storeId"] = parts[1]
		}

		if parts[2] == "" {
			errs = append(errs, "Category is required")
		} else {
			metadata["category"] = parts[2]
		}

		if parts[3] == "" {
			errs = append(errs, "Product name is required")
		} else {
			metadata["product"] = parts[3]
		}

		if parts[4] != "" && !shelfPattern.MatchString(parts[4]) {
			errs = append(errs, fmt.Sprintf("Shelf must be format like Shelf1, found '%s'", parts[4]))
		} else {
			metadata["shelf"] = parts[4]
		}

		if parts[5] != "" && !isCaptureAngle(parts[5]) {
			errs = append(errs, fmt.Sprintf("Angle must be one of %s, found '%s'",
				strings.Join(CaptureAngles, ", "), parts[5]))
		} else {
			metadata["angle"] = parts[5]
		}

		if parts[6] != "" && !datePattern.MatchString(parts[6]) {
			errs = append(errs, fmt.Sprintf("Date must be YYYYMMDD format, found '%s'", parts[6]))
		} else {
			metadata["date"] = parts[6]
		}

		seq := strings.Join(parts[7:], "_")
		if !seqPattern.MatchString(seq) {
			errs = append(errs, fmt.Sprintf("Sequence must be 01-999 format with .jpg extension, found '%s'", seq))
		} else {
			metadata["sequence"] = strings.SplitN(seq, ".", 2)[0]
		}

		return Result{IsValid: len(errs) == 0, Errors: errs, Metadata: metadata}
	}

	parts := strings.Split(filename, "_")
	metadata["client"] = parts[0]
	metadata["storeId"] = parts[1]
	metadata["category"] = parts[2]
	metadata["product"] = parts[3]
	metadata["shelf"] = parts[4]
	metadata["angle"] = parts[5]
	metadata["date"] = parts[6]
	metadata["sequence"] = strings.SplitN(parts[7], ".", 2)[0]

	return Result{IsValid: true, Errors: errs, Metadata: metadata}
}
