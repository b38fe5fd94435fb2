package Naming

import (
	"fmt"
	"time"
)

// CaptureAngles are the allowed retail capture angles.
var CaptureAngles = []string{"Front", "Left", "Right", "Top"}

// RetailScheme builds
// {CLIENT}_{STOREID}_{CATEGORY}_{PRODUCT}_{SHELF}_{ANGLE}_{DATE}_{SEQ}.{ext}
// names with embedded whitespace stripped from the free-text fields.
//
// Generation takes the store ID as given; the letter-prefix+digits shape is
// only enforced by the validation grammar. The gap is deliberate and kept
// from the reference behavior.
type RetailScheme struct{}

func (RetailScheme) Generate(meta Metadata, index int) string {
	client := stripSpaces(get(meta, "client", "Client"))
	storeID := get(meta, "storeId", "STR0001")
	category := stripSpaces(get(meta, "category", "General"))
	product := stripSpaces(get(meta, "product", "Product"))
	shelf := get(meta, "shelf", "Shelf1")
	angle := get(meta, "angle", "Front")
	date := get(meta, "date", time.Now().Format("20060102"))
	ext := get(meta, "ext", "jpg")

	return fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s_%02d.%s",
		client, storeID, category, product, shelf, angle, date, index, ext)
}

func isCaptureAngle(angle string) bool {
	for _, known := range CaptureAngles {
		if known == angle {
			return true
		}
	}
	return false
}
