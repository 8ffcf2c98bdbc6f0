package profile

import "sort"

// Merge reconciles an extracted candidate, a user-built profile, and an
// ordered list of correction patches into one WorkingProfile.
//
// Priority, lowest to highest: extracted seeds every present field with
// structured-data provenance and the extraction's aggregate confidence
// (medium when untagged); user-provided fields overlay with high
// confidence; confirmed patches overlay last, in list order. The result is
// a fresh value; none of the inputs are mutated.
func Merge(extracted *ExtractedProfile, user *WorkingProfile, patches []ConfirmationPatch) *WorkingProfile {
	out := NewWorkingProfile()

	if extracted != nil {
		seedConf := extracted.Confidence
		if seedConf == "" || seedConf == ConfidenceNone {
			seedConf = ConfidenceMedium
		}
		for _, f := range AllFields {
			if extracted.HasField(f) {
				out.copyField(f, &extracted.Data)
				out.Confidence[f] = seedConf
				out.Sources[f] = SourceStructuredData
			}
		}
	}

	if user != nil {
		for _, f := range AllFields {
			if user.HasField(f) {
				out.copyField(f, &user.Data)
				// The working profile carries its own provenance: a field
				// accepted from extraction during confirmation stays
				// structured-data. Untagged fields default to the
				// user-typed case.
				conf := ConfidenceHigh
				if c, ok := user.Confidence[f]; ok {
					conf = c
				}
				src := SourceUserProvided
				if s, ok := user.Sources[f]; ok {
					src = s
				}
				out.Confidence[f] = conf
				out.Sources[f] = src
			}
		}
	}

	for _, patch := range patches {
		if !patch.Confirmed {
			continue
		}
		out.setString(patch.Field, patch.NewValue)
		out.Confidence[patch.Field] = ConfidenceHigh
		out.Sources[patch.Field] = SourceUserProvided
	}

	out.OverallConfidence = overallConfidence(out.Confidence, ConfidenceNone)
	return out
}

// overallConfidence derives the aggregate label from the per-field map:
// the ratio of high-confidence fields over fields with any confidence at
// all. Above 0.7 is high, above 0.4 medium, otherwise low. With no scored
// fields the previous value stands.
func overallConfidence(conf map[Field]ConfidenceLevel, prev ConfidenceLevel) ConfidenceLevel {
	scored := 0
	high := 0
	for _, level := range conf {
		if level == ConfidenceNone {
			continue
		}
		scored++
		if level == ConfidenceHigh {
			high++
		}
	}
	if scored == 0 {
		return prev
	}
	ratio := float64(high) / float64(scored)
	switch {
	case ratio > 0.7:
		return ConfidenceHigh
	case ratio > 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// RecomputeOverall refreshes the aggregate confidence in place, keeping the
// last explicit value when nothing is scored yet.
func (w *WorkingProfile) RecomputeOverall() {
	w.OverallConfidence = overallConfidence(w.Confidence, w.OverallConfidence)
}

// SocialLinksLine renders social links as "platform: url" pairs in sorted
// platform order so equal maps always render identically.
func SocialLinksLine(links map[string]string) string {
	if len(links) == 0 {
		return ""
	}
	platforms := make([]string, 0, len(links))
	for p := range links {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	line := ""
	for i, p := range platforms {
		if i > 0 {
			line += ", "
		}
		line += p + ": " + links[p]
	}
	return line
}
