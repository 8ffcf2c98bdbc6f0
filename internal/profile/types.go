// Package profile holds the data model for a business profile under
// construction: the raw extracted candidate, the working profile with
// per-field confidence and provenance, and user correction patches.
package profile

import "strings"

// ConfidenceLevel is the coarse trust label attached to each field and to
// the profile overall.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceNone   ConfidenceLevel = "none"
)

// DataSource records where a field's value came from.
type DataSource string

const (
	SourceUserProvided   DataSource = "user-provided"
	SourceStructuredData DataSource = "structured-data"
	SourceInferred       DataSource = "inferred"
)

// Field is the closed enumeration of profile field names. Confidence and
// provenance are tracked per Field; adding a field means extending this
// list and the switch cases in accessors.go.
type Field string

const (
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldBusinessType   Field = "businessType"
	FieldPhone          Field = "phone"
	FieldEmail          Field = "email"
	FieldAddress        Field = "address"
	FieldCity           Field = "city"
	FieldServices       Field = "services"
	FieldProducts       Field = "products"
	FieldFeatures       Field = "features"
	FieldTestimonials   Field = "testimonials"
	FieldSocialLinks    Field = "socialLinks"
	FieldLogo           Field = "logo"
	FieldHeroImage      Field = "heroImage"
	FieldGallery        Field = "gallery"
	FieldPrimaryColor   Field = "primaryColor"
	FieldSecondaryColor Field = "secondaryColor"
	FieldAboutText      Field = "aboutText"
)

// AllFields lists every profile field in a fixed order. Merge iteration and
// summary generation depend on this order being stable.
var AllFields = []Field{
	FieldName,
	FieldDescription,
	FieldBusinessType,
	FieldPhone,
	FieldEmail,
	FieldAddress,
	FieldCity,
	FieldServices,
	FieldProducts,
	FieldFeatures,
	FieldTestimonials,
	FieldSocialLinks,
	FieldLogo,
	FieldHeroImage,
	FieldGallery,
	FieldPrimaryColor,
	FieldSecondaryColor,
	FieldAboutText,
}

// Data is the field set shared by extracted candidates and working
// profiles.
type Data struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	BusinessType string `json:"businessType,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`

	Services     []string `json:"services,omitempty"`
	Products     []string `json:"products,omitempty"`
	Features     []string `json:"features,omitempty"`
	Testimonials []string `json:"testimonials,omitempty"`

	SocialLinks map[string]string `json:"socialLinks,omitempty"`

	Logo           string   `json:"logo,omitempty"`
	HeroImage      string   `json:"heroImage,omitempty"`
	Gallery        []string `json:"gallery,omitempty"`
	PrimaryColor   string   `json:"primaryColor,omitempty"`
	SecondaryColor string   `json:"secondaryColor,omitempty"`

	AboutText string `json:"aboutText,omitempty"`
}

// ExtractedProfile is the raw, unconfirmed candidate produced by the
// extraction collaborator for one URL. It carries a single aggregate
// confidence tag and is never mutated after creation.
type ExtractedProfile struct {
	Data

	Confidence ConfidenceLevel `json:"confidence,omitempty"`
	RawText    string          `json:"rawText,omitempty"`
	SourceURL  string          `json:"sourceUrl,omitempty"`
}

// IsEmpty reports whether the candidate is unusable. A nameless extraction
// is treated as a failure by the orchestrator.
func (e *ExtractedProfile) IsEmpty() bool {
	return e == nil || strings.TrimSpace(e.Name) == ""
}

// WorkingProfile is the profile under construction, with per-field
// confidence and provenance maps. Confidence carries an entry for every
// field that has been set; Sources only for fields set at least once.
type WorkingProfile struct {
	Data

	Confidence        map[Field]ConfidenceLevel `json:"confidence,omitempty"`
	OverallConfidence ConfidenceLevel           `json:"overallConfidence"`
	Sources           map[Field]DataSource      `json:"dataSource,omitempty"`
}

// NewWorkingProfile returns an empty profile with overall confidence none.
func NewWorkingProfile() *WorkingProfile {
	return &WorkingProfile{
		Confidence:        map[Field]ConfidenceLevel{},
		OverallConfidence: ConfidenceNone,
		Sources:           map[Field]DataSource{},
	}
}

// SetField records a field value together with its confidence and
// provenance.
func (w *WorkingProfile) SetField(f Field, value string, conf ConfidenceLevel, src DataSource) {
	w.setString(f, value)
	if w.Confidence == nil {
		w.Confidence = map[Field]ConfidenceLevel{}
	}
	if w.Sources == nil {
		w.Sources = map[Field]DataSource{}
	}
	w.Confidence[f] = conf
	w.Sources[f] = src
}

// Clone returns a deep copy. Successor states are always built from copies
// so a caller-held snapshot is never mutated.
func (w *WorkingProfile) Clone() *WorkingProfile {
	if w == nil {
		return nil
	}
	out := &WorkingProfile{
		Data:              w.Data,
		OverallConfidence: w.OverallConfidence,
		Confidence:        make(map[Field]ConfidenceLevel, len(w.Confidence)),
		Sources:           make(map[Field]DataSource, len(w.Sources)),
	}
	out.Services = copyStrings(w.Services)
	out.Products = copyStrings(w.Products)
	out.Features = copyStrings(w.Features)
	out.Testimonials = copyStrings(w.Testimonials)
	out.Gallery = copyStrings(w.Gallery)
	out.SocialLinks = copyStringMap(w.SocialLinks)
	for k, v := range w.Confidence {
		out.Confidence[k] = v
	}
	for k, v := range w.Sources {
		out.Sources[k] = v
	}
	return out
}

// ConfirmationPatch records one user correction. Patches are additive and
// ordered; a later patch for the same field wins when merging.
type ConfirmationPatch struct {
	Field     Field  `json:"field"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
	Confirmed bool   `json:"confirmed"`
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
