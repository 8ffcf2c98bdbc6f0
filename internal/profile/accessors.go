package profile

import "strings"

// HasField reports whether the field carries a non-zero value.
func (d *Data) HasField(f Field) bool {
	switch f {
	case FieldName:
		return d.Name != ""
	case FieldDescription:
		return d.Description != ""
	case FieldBusinessType:
		return d.BusinessType != ""
	case FieldPhone:
		return d.Phone != ""
	case FieldEmail:
		return d.Email != ""
	case FieldAddress:
		return d.Address != ""
	case FieldCity:
		return d.City != ""
	case FieldServices:
		return len(d.Services) > 0
	case FieldProducts:
		return len(d.Products) > 0
	case FieldFeatures:
		return len(d.Features) > 0
	case FieldTestimonials:
		return len(d.Testimonials) > 0
	case FieldSocialLinks:
		return len(d.SocialLinks) > 0
	case FieldLogo:
		return d.Logo != ""
	case FieldHeroImage:
		return d.HeroImage != ""
	case FieldGallery:
		return len(d.Gallery) > 0
	case FieldPrimaryColor:
		return d.PrimaryColor != ""
	case FieldSecondaryColor:
		return d.SecondaryColor != ""
	case FieldAboutText:
		return d.AboutText != ""
	}
	return false
}

// FieldString renders the field value as a single display string. List
// fields join with ", "; social links render as "platform: url" pairs in
// insertion-independent sorted order via SocialLinksLine.
func (d *Data) FieldString(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldDescription:
		return d.Description
	case FieldBusinessType:
		return d.BusinessType
	case FieldPhone:
		return d.Phone
	case FieldEmail:
		return d.Email
	case FieldAddress:
		return d.Address
	case FieldCity:
		return d.City
	case FieldServices:
		return strings.Join(d.Services, ", ")
	case FieldProducts:
		return strings.Join(d.Products, ", ")
	case FieldFeatures:
		return strings.Join(d.Features, ", ")
	case FieldTestimonials:
		return strings.Join(d.Testimonials, ", ")
	case FieldSocialLinks:
		return SocialLinksLine(d.SocialLinks)
	case FieldLogo:
		return d.Logo
	case FieldHeroImage:
		return d.HeroImage
	case FieldGallery:
		return strings.Join(d.Gallery, ", ")
	case FieldPrimaryColor:
		return d.PrimaryColor
	case FieldSecondaryColor:
		return d.SecondaryColor
	case FieldAboutText:
		return d.AboutText
	}
	return ""
}

// setString writes a display-string value back into the field. List fields
// split on commas; social links parse "platform: url" pairs.
func (d *Data) setString(f Field, value string) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldBusinessType:
		d.BusinessType = value
	case FieldPhone:
		d.Phone = value
	case FieldEmail:
		d.Email = value
	case FieldAddress:
		d.Address = value
	case FieldCity:
		d.City = value
	case FieldServices:
		d.Services = splitList(value)
	case FieldProducts:
		d.Products = splitList(value)
	case FieldFeatures:
		d.Features = splitList(value)
	case FieldTestimonials:
		d.Testimonials = splitList(value)
	case FieldSocialLinks:
		d.SocialLinks = parseSocialLinks(value)
	case FieldLogo:
		d.Logo = value
	case FieldHeroImage:
		d.HeroImage = value
	case FieldGallery:
		d.Gallery = splitList(value)
	case FieldPrimaryColor:
		d.PrimaryColor = value
	case FieldSecondaryColor:
		d.SecondaryColor = value
	case FieldAboutText:
		d.AboutText = value
	}
}

// copyField copies one field value from src, preserving list/map identity
// semantics (the destination gets its own backing storage).
func (d *Data) copyField(f Field, src *Data) {
	switch f {
	case FieldServices:
		d.Services = copyStrings(src.Services)
	case FieldProducts:
		d.Products = copyStrings(src.Products)
	case FieldFeatures:
		d.Features = copyStrings(src.Features)
	case FieldTestimonials:
		d.Testimonials = copyStrings(src.Testimonials)
	case FieldGallery:
		d.Gallery = copyStrings(src.Gallery)
	case FieldSocialLinks:
		d.SocialLinks = copyStringMap(src.SocialLinks)
	default:
		d.setString(f, src.FieldString(f))
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseSocialLinks(value string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(value, ",") {
		platform, url, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		platform = strings.TrimSpace(platform)
		url = strings.TrimSpace(url)
		if platform != "" && url != "" {
			out[platform] = url
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
