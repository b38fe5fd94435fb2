package Naming

import "strings"

// HelpField documents one segment of a fixed convention for the UI.
type HelpField struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Help describes a fixed naming convention for the upload form.
type Help struct {
	Format      string      `json:"format"`
	Example     string      `json:"example"`
	Description string      `json:"description"`
	Fields      []HelpField `json:"fields"`
}

// HelpFor returns the convention help text for a fixed scheme, or nil
// when the scheme has no fixed convention.
func HelpFor(schemeID string) *Help {
	switch schemeID {
	case SchemeIDMobility:
		return &Help{
			Format:      "MOB_City_Camera_Date_FrameID.jpg",
			Example:     "MOB_BLR_FC_20260201_F001.jpg",
			Description: "Mobility sector images",
			Fields: []HelpField{
				{Name: "Part", Value: "MOB", Description: "Project type - always MOB"},
				{Name: "City", Value: "BLR", Description: "3-letter city code (e.g., BLR, DEL, MUM)"},
				{Name: "Camera", Value: "FC", Description: "Camera position: " + strings.Join(CameraPositions, ", ")},
				{Name: "Date", Value: "20260201", Description: "Date in YYYYMMDD format"},
				{Name: "FrameID", Value: "F001", Description: "Frame number F001-F9999"},
			},
		}
	case SchemeIDRetail:
		return &Help{
			Format:      "Client_StoreID_Category_Product_Shelf_Angle_Date_Sequence.jpg",
			Example:     "Reliance_STR1023_Beverages_CocaCola330ml_Shelf2_Front_20260205_01.jpg",
			Description: "Retail sector images",
			Fields: []HelpField{
				{Name: "Client", Value: "Reliance", Description: "Retail brand name"},
				{Name: "StoreID", Value: "STR1023", Description: "Unique store identifier"},
				{Name: "Category", Value: "Beverages", Description: "Product category"},
				{Name: "Product", Value: "CocaCola330ml", Description: "SKU/Brand/Product name"},
				{Name: "Shelf", Value: "Shelf2", Description: "Shelf number or rack"},
				{Name: "Angle", Value: "Front", Description: "Capture angle: " + strings.Join(CaptureAngles, ", ")},
				{Name: "Date", Value: "20260205", Description: "Date in YYYYMMDD format"},
				{Name: "Sequence", Value: "01", Description: "Sequence number 01-99"},
			},
		}
	}
	return nil
}
