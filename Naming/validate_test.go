package Naming

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateMobilityValid(t *testing.T) {
	result := ValidateMobility("MOB_BLR_FC_20260201_F001.jpg")
	if !result.IsValid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
	expected := map[string]string{
		"part":    "MOB",
		"city":    "BLR",
		"camera":  "FC",
		"date":    "20260201",
		"frameId": "F001",
	}
	for key, want := range expected {
		if got := result.Metadata[key]; got != want {
			t.Errorf("metadata[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestValidateMobilityDiagnosis(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantError string
	}{
		{"wrong prefix", "CAR_BLR_FC_20260201_F001.jpg", "Part must be 'MOB'"},
		{"bad city", "MOB_BANG_FC_20260201_F001.jpg", "City must be 3-letter code"},
		{"bad camera", "MOB_BLR_ZZZZ_20260201_F001.jpg", "Camera must be one of"},
		{"bad date", "MOB_BLR_FC_2026-02_F001.jpg", "Date must be YYYYMMDD"},
		{"bad frame", "MOB_BLR_FC_20260201_001.jpg", "Frame must be F001-F9999"},
		{"too few parts", "MOB_BLR_FC.jpg", "Invalid format. Expected: MOB_CITY_CAMERA_DATE_FRAME.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateMobility(tt.filename)
			if result.IsValid {
				t.Fatalf("expected %q to be invalid", tt.filename)
			}
			if !containsError(result.Errors, tt.wantError) {
				t.Errorf("errors %v do not mention %q", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidateRetailValid(t *testing.T) {
	result := ValidateRetail("BigBazaar_STR1023_Beverages_ColaZero_Shelf3_Front_20260215_07.jpg")
	if !result.IsValid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
	if result.Metadata["storeId"] != "STR1023" {
		t.Errorf("metadata[storeId] = %q, want STR1023", result.Metadata["storeId"])
	}
	if result.Metadata["sequence"] != "07" {
		t.Errorf("metadata[sequence] = %q, want 07", result.Metadata["sequence"])
	}
}

func TestValidateRetailDiagnosis(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantError string
	}{
		{"bad store ID", "Client_1023_Cat_Prod_Shelf1_Front_20260215_07.jpg", "Store ID must be format like STR1023"},
		{"bad shelf", "Client_STR1023_Cat_Prod_Rack1_Front_20260215_07.jpg", "Shelf must be format like Shelf1"},
		{"bad angle", "Client_STR1023_Cat_Prod_Shelf1_Back2_20260215_07.jpg", "Angle must be one of"},
		{"bad sequence", "Client_STR1023_Cat_Prod_Shelf1_Front_20260215_7.jpg", "Sequence must be 01-999"},
		{"too few parts", "Client_STR1023_Cat.jpg", "Invalid format. Expected: CLIENT_STOREID_CATEGORY_PRODUCT_SHELF_ANGLE_DATE_SEQ.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRetail(tt.filename)
			if result.IsValid {
				t.Fatalf("expected %q to be invalid", tt.filename)
			}
			if !containsError(result.Errors, tt.wantError) {
				t.Errorf("errors %v do not mention %q", result.Errors, tt.wantError)
			}
		})
	}
}

// The coarse pattern is case insensitive, but once a name falls into the
// per-field diagnosis the angle comparison is exact: "front" is not
// "Front".
func TestValidateRetailAngleCaseSensitiveInDiagnosis(t *testing.T) {
	result := ValidateRetail("Client_STR1023_Cat_Prod_Rack1_front_20260215_07.jpg")
	if result.IsValid {
		t.Fatal("expected invalid name")
	}
	if !containsError(result.Errors, "Shelf must be format like Shelf1") {
		t.Errorf("errors %v do not mention the shelf", result.Errors)
	}
	if !containsError(result.Errors, "Angle must be one of") {
		t.Errorf("errors %v do not mention the angle", result.Errors)
	}
}

func TestValidateDispatch(t *testing.T) {
	if _, err := Validate("whatever.jpg", "dynamic"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}

	result, err := Validate("", SchemeIDMobility)
	if err != nil {
		t.Fatalf("empty filename should not error: %v", err)
	}
	if result.IsValid || !containsError(result.Errors, "Filename is required") {
		t.Errorf("empty filename result = %+v", result)
	}
}

// Names produced by the fixed generators must pass their own validators.
func TestGenerateValidateRoundTrip(t *testing.T) {
	t.Run("mobility", func(t *testing.T) {
		for index := 1; index <= 3; index++ {
			name := MobilityScheme{}.Generate(Metadata{
				"city": "hyd", "camera": "rc", "date": "20260301", "ext": "jpg",
			}, index)
			if result := ValidateMobility(name); !result.IsValid {
				t.Errorf("generated %q failed validation: %v", name, result.Errors)
			}
		}
	})

	t.Run("retail", func(t *testing.T) {
		name := RetailScheme{}.Generate(Metadata{
			"client":   "Reliance Fresh",
			"storeId":  "STR88",
			"category": "Dairy",
			"product":  "Butter 500g",
			"shelf":    "Shelf2",
			"angle":    "Left",
			"date":     "20260301",
			"ext":      "png",
		}, 12)
		if result := ValidateRetail(name); !result.IsValid {
			t.Errorf("generated %q failed validation: %v", name, result.Errors)
		}
	})
}

func containsError(errs []string, fragment string) bool {
	for _, e := range errs {
		if strings.Contains(e, fragment) {
			return true
		}
	}
	return false
}
