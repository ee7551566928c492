package alert

import (
	"testing"

	"github.com/skywatch-go/skywatch/enrich"
	"github.com/skywatch-go/skywatch/enrichment"
)

func TestBuildEmbedFieldOrderAndContent(t *testing.T) {
	rec := enrichment.Record{
		Airplane: &enrichment.Airplane{RegistrationNumber: "N12345", IATACodeLong: "B738"},
		Airline:  &enrichment.Airline{AirlineName: "Example Air"},
		Country:  &enrichment.Country{CountryName: "United States"},
		Photos: []enrich.Photo{{Link: "https://example.com/1"}},
	}
	rec.Photos[0].ThumbnailLarge.Src = "https://example.com/thumb.jpg"

	e := BuildEmbed("A12F52", 0.72, "3500", "SWA123", "37.78368", "-122.15441", "140", rec)

	if e.Title != "A12F52" {
		t.Errorf("Title = %q, want A12F52", e.Title)
	}

	wantNames := []string{
		"Flight Number", "Registration Number", "Aircraft Type",
		"Latitude", "Longitude", "Ground Speed", "Airline Name", "Country Name",
	}
	if len(e.Fields) != len(wantNames) {
		t.Fatalf("got %d fields, want %d", len(e.Fields), len(wantNames))
	}
	for i, name := range wantNames {
		if e.Fields[i].Name != name {
			t.Errorf("field %d name = %q, want %q", i, e.Fields[i].Name, name)
		}
		if !e.Fields[i].Inline {
			t.Errorf("field %q is not inline, want inline", name)
		}
	}
	if e.Fields[1].Value != "N12345" {
		t.Errorf("Registration Number value = %q, want N12345", e.Fields[1].Value)
	}
	if e.Image == nil || e.Image.URL != "https://example.com/thumb.jpg" {
		t.Errorf("Image = %+v, want the first photo's large thumbnail", e.Image)
	}
}

func TestBuildEmbedOmitsImageWhenNoPhotos(t *testing.T) {
	e := BuildEmbed("A12F52", 1.0, "1000", "SWA123", "0", "0", "100", enrichment.Record{})
	if e.Image != nil {
		t.Errorf("Image = %+v, want nil when the record has no photos", e.Image)
	}
}
