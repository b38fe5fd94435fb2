package Naming

import (
	"fmt"
	"time"
)

// AgriScheme builds {CROP}_{STATE}_{DISTRICT}_{DATE:DDMMYYYY}_{CONDITION}
// names. Agri has no validation grammar; only generation is fixed.
type AgriScheme struct{}

func (AgriScheme) Generate(meta Metadata, index int) string {
	crop := stripSpaces(get(meta, "cropName", "Crop"))
	state := stripSpaces(get(meta, "state", "State"))
	district := stripSpaces(get(meta, "district", "District"))
	date := get(meta, "date", time.Now().Format("02012006"))
	condition := stripSpaces(get(meta, "observedCondition", "normalGrowth"))
	ext := get(meta, "ext", "jpg")

	return fmt.Sprintf("%s_%s_%s_%s_%s.%s", crop, state, district, date, condition, ext)
}
