package Naming

import (
	"fmt"
	"strings"
	"time"
)

// CameraPositions are the allowed mobility camera-position codes.
var CameraPositions = []string{"FC", "RC", "LC", "RIC"}

// DefaultCamera is used when the uploader leaves the camera field empty.
const DefaultCamera = "FC"

// MobilityScheme builds MOB_{CITY}_{CAMERA}_{DATE}_F{SEQ}.{ext} names.
// City is uppercased and forced to exactly three characters, padded with X.
type MobilityScheme struct{}

func (MobilityScheme) Generate(meta Metadata, index int) string {
	city := strings.ToUpper(get(meta, "city", "UNK"))
	if len(city) > 3 {
		city = city[:3]
	}
	for len(city) < 3 {
		city += "X"
	}

	camera := strings.ToUpper(get(meta, "camera", DefaultCamera))
	date := get(meta, "date", time.Now().Format("20060102"))
	ext := get(meta, "ext", "jpg")

	return fmt.Sprintf("MOB_%s_%s_%s_F%03d.%s", city, camera, date, index, ext)
}

func isCameraPosition(code string) bool {
	upper := strings.ToUpper(code)
	for _, position := range CameraPositions {
		if position == upper {
			return true
		}
	}
	return false
}
