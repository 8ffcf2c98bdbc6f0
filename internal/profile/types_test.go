package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkingProfile_SetField(t *testing.T) {
	w := NewWorkingProfile()
	w.SetField(FieldName, "Joe's Garage", ConfidenceHigh, SourceUserProvided)

	assert.Equal(t, "Joe's Garage", w.Name)
	assert.Equal(t, ConfidenceHigh, w.Confidence[FieldName])
	assert.Equal(t, SourceUserProvided, w.Sources[FieldName])
}

func TestWorkingProfile_SetFieldListSplitsOnCommas(t *testing.T) {
	w := NewWorkingProfile()
	w.SetField(FieldServices, "Oil change, Brakes , Tires", ConfidenceHigh, SourceUserProvided)

	assert.Equal(t, []string{"Oil change", "Brakes", "Tires"}, w.Services)
}

func TestWorkingProfile_Clone(t *testing.T) {
	w := NewWorkingProfile()
	w.SetField(FieldName, "Acme", ConfidenceHigh, SourceUserProvided)
	w.SetField(FieldServices, "a, b", ConfidenceMedium, SourceStructuredData)
	w.SocialLinks = map[string]string{"x": "https://x.com/acme"}

	clone := w.Clone()
	clone.SetField(FieldName, "Changed", ConfidenceLow, SourceInferred)
	clone.Services[0] = "changed"
	clone.SocialLinks["x"] = "changed"

	assert.Equal(t, "Acme", w.Name)
	assert.Equal(t, "a", w.Services[0])
	assert.Equal(t, "https://x.com/acme", w.SocialLinks["x"])
	assert.Equal(t, ConfidenceHigh, w.Confidence[FieldName])
}

func TestExtractedProfile_IsEmpty(t *testing.T) {
	var nilProfile *ExtractedProfile
	assert.True(t, nilProfile.IsEmpty())
	assert.True(t, (&ExtractedProfile{}).IsEmpty())
	assert.True(t, (&ExtractedProfile{Data: Data{Name: "   "}}).IsEmpty())
	assert.False(t, (&ExtractedProfile{Data: Data{Name: "Acme"}}).IsEmpty())
}

func TestFieldString_SocialLinksAreSorted(t *testing.T) {
	d := &Data{SocialLinks: map[string]string{
		"twitter":  "https://t.example",
		"facebook": "https://f.example",
	}}

	// Sorted platform order keeps rendering deterministic.
	assert.Equal(t, "facebook: https://f.example, twitter: https://t.example",
		d.FieldString(FieldSocialLinks))
}

func TestHasField_CoversEveryEnumeratedField(t *testing.T) {
	d := &Data{
		Name:           "n",
		Description:    "d",
		BusinessType:   "b",
		Phone:          "p",
		Email:          "e",
		Address:        "a",
		City:           "c",
		Services:       []string{"s"},
		Products:       []string{"p"},
		Features:       []string{"f"},
		Testimonials:   []string{"t"},
		SocialLinks:    map[string]string{"k": "v"},
		Logo:           "l",
		HeroImage:      "h",
		Gallery:        []string{"g"},
		PrimaryColor:   "#fff",
		SecondaryColor: "#000",
		AboutText:      "about",
	}

	for _, f := range AllFields {
		assert.True(t, d.HasField(f), "field %s should be set", f)
	}

	empty := &Data{}
	for _, f := range AllFields {
		assert.False(t, empty.HasField(f), "field %s should be empty", f)
	}
}
